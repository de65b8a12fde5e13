package gaql

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"golang.org/x/exp/maps"
)

const (
	// ResourceCampaign is the default FROM target for performance queries.
	ResourceCampaign = "campaign"
	// ResourceCustomer anchors customer-scoped segments; selecting the
	// conversion action name segment forces the query onto it.
	ResourceCustomer = "customer"

	conversionActionSegment = "segments.conversion_action_name"
)

// metricFields maps the metric names accepted on the command line to their
// reporting field paths.
var metricFields = map[string]string{
	"conversions":           "metrics.conversions",
	"all_conversions":       "metrics.all_conversions",
	"conversions_value":     "metrics.conversions_value",
	"all_conversions_value": "metrics.all_conversions_value",
	"clicks":                "metrics.clicks",
	"impressions":           "metrics.impressions",
}

// Query describes one report query before serialization. Zero-value Resource
// means ResourceCampaign.
type Query struct {
	Resource  string
	Metrics   []string
	Filters   []string
	OrderBy   string
	Limit     int
	DateRange *domain.DateRange
}

// Metrics returns the metric names Build accepts, sorted for stable flag
// help output.
func Metrics() []string {
	names := maps.Keys(metricFields)
	sort.Strings(names)
	return names
}

// Built is the deterministic serialization of a Query plus the field list
// the SELECT clause ended up with, in emission order. Downstream flattening
// replays exactly these fields against every row.
type Built struct {
	Query    string
	Resource string
	Fields   []string
}

// Build serializes q into a single query string. The SELECT list is
// deduplicated but otherwise keeps input order; exactly one FROM clause is
// emitted, switched to the customer resource when the conversion action name
// segment appears among the metrics or filters.
func Build(q Query) (Built, error) {
	resource := q.Resource
	if resource == "" {
		resource = ResourceCampaign
	}

	fields := []string{"segments.date"}
	if wantsConversionActionSegment(q) {
		resource = ResourceCustomer
		fields = append(fields, conversionActionSegment)
	} else {
		fields = append(fields, "campaign.id", "campaign.name")
	}

	for _, m := range q.Metrics {
		if m == conversionActionSegment {
			continue // already selected via the resource switch
		}
		path, ok := metricFields[m]
		if !ok {
			return Built{}, domain.NewConfigurationError("unsupported metric %q", m)
		}
		fields = append(fields, path)
	}
	fields = dedupe(fields)

	parts := []string{fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), resource)}

	var where []string
	if q.DateRange != nil {
		where = append(where, fmt.Sprintf(
			"segments.date BETWEEN '%s' AND '%s'", q.DateRange.StartString(), q.DateRange.EndString()))
	}
	where = append(where, filterClauses(q.Filters)...)
	if len(where) > 0 {
		parts = append(parts, "WHERE "+strings.Join(where, " AND "))
	}

	if q.OrderBy != "" {
		orderBy := q.OrderBy
		if _, ok := metricFields[orderBy]; ok {
			orderBy = "metrics." + orderBy
		}
		parts = append(parts, fmt.Sprintf("ORDER BY %s DESC", orderBy))
	}

	if q.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", q.Limit))
	}

	return Built{
		Query:    strings.Join(parts, " "),
		Resource: resource,
		Fields:   fields,
	}, nil
}

func wantsConversionActionSegment(q Query) bool {
	for _, m := range q.Metrics {
		if m == conversionActionSegment {
			return true
		}
	}
	for _, f := range q.Filters {
		if strings.HasPrefix(f, "conversion_action_name=") {
			return true
		}
	}
	return false
}

// filterClauses translates key=value tokens into predicates. Tokens that do
// not match a recognized shape are dropped, not rejected; callers pass raw
// user input here and partial filtering is preferred over refusing the query.
func filterClauses(filters []string) []string {
	var clauses []string
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		switch key {
		case "conversion_action_name":
			clauses = append(clauses, fmt.Sprintf("%s = '%s'", conversionActionSegment, value))
		case "min_conversions":
			threshold, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			clauses = append(clauses, fmt.Sprintf("metrics.conversions > %g", threshold))
		case "campaign_id":
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				continue
			}
			clauses = append(clauses, fmt.Sprintf("campaign.id = %s", value))
		case "campaign_name_like":
			clauses = append(clauses, fmt.Sprintf("campaign.name LIKE '%%%s%%'", value))
		}
	}
	return clauses
}

func dedupe(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
