package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/ads-atlas/pkg/adapters"
	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/de-tools/ads-atlas/pkg/gaql"
	"github.com/de-tools/ads-atlas/pkg/models/api"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
	reportsvc "github.com/de-tools/ads-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultPreset = gaql.PresetLast7Days

type Handler struct {
	client ads.SearchClient
	clock  gaql.Clock
}

func NewHandler(client ads.SearchClient, clock gaql.Clock) *Handler {
	if clock == nil {
		clock = gaql.SystemClock
	}
	return &Handler{client: client, clock: clock}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var response []api.ReportDefinition
	for _, def := range reportsvc.Definitions() {
		response = append(response, api.ReportDefinition{Slug: def.Slug, Name: def.Name})
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode report definitions")
	}
}

func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	customerID := chi.URLParam(r, "customerID")
	slug := chi.URLParam(r, "report")

	def, err := reportsvc.DefinitionBySlug(slug)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	params := r.URL.Query()
	preset := params.Get("preset")
	start := params.Get("start")
	end := params.Get("end")
	if preset == "" && start == "" && end == "" {
		preset = defaultPreset
	}

	dr, err := gaql.ResolveDateRange(start, end, preset, h.clock)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit := 0
	if raw := params.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, domain.NewConfigurationError("invalid limit %q", raw))
			return
		}
	}

	table, err := reportsvc.FetchTable(ctx, h.client, customerID, def.Query(dr, limit), def.Fields)
	if err != nil {
		logger.Error().
			Err(err).
			Str("customer_id", customerID).
			Str("report", slug).
			Msg("report fetch failed")
		writeError(w, statusFor(err), err)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapDomainTableToApi(slug, table)); err != nil {
		logger.Error().Err(err).Str("report", slug).Msg("failed to encode report")
	}
}

func statusFor(err error) int {
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest
	}
	var reqErr *ads.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}
