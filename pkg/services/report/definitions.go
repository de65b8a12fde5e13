package report

import (
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/models/domain"
)

// Definition is a canned report: a stable slug, a human label, the field
// paths to flatten, and the query for a given date window.
type Definition struct {
	Slug   string
	Name   string
	Fields []string
	Query  func(dr domain.DateRange, limit int) string
}

// Definitions lists the canned reports, in the order the parallel downloader
// submits them.
func Definitions() []Definition {
	return []Definition{
		{
			Slug:   "campaign-performance",
			Name:   "Campaign Performance",
			Fields: []string{"campaign.id", "campaign.name", "metrics.clicks", "metrics.impressions", "metrics.cost_micros"},
			Query: func(dr domain.DateRange, limit int) string {
				return performanceQuery("campaign.id, campaign.name", "campaign", dr, limit)
			},
		},
		{
			Slug:   "ad-group-performance",
			Name:   "Ad Group Performance",
			Fields: []string{"ad_group.id", "ad_group.name", "metrics.clicks", "metrics.impressions", "metrics.cost_micros"},
			Query: func(dr domain.DateRange, limit int) string {
				return performanceQuery("ad_group.id, ad_group.name", "ad_group", dr, limit)
			},
		},
		{
			Slug:   "keyword-performance",
			Name:   "Keyword Performance",
			Fields: []string{"ad_group_criterion.keyword.text", "ad_group_criterion.keyword.match_type", "metrics.clicks", "metrics.impressions", "metrics.cost_micros"},
			Query: func(dr domain.DateRange, limit int) string {
				return performanceQuery(
					"ad_group_criterion.keyword.text, ad_group_criterion.keyword.match_type", "keyword_view", dr, limit)
			},
		},
	}
}

// DefinitionBySlug resolves a canned report by its slug.
func DefinitionBySlug(slug string) (Definition, error) {
	for _, def := range Definitions() {
		if def.Slug == slug {
			return def, nil
		}
	}
	return Definition{}, domain.NewConfigurationError("unknown report %q", slug)
}

func performanceQuery(dimensions, resource string, dr domain.DateRange, limit int) string {
	query := fmt.Sprintf(
		"SELECT %s, metrics.clicks, metrics.impressions, metrics.cost_micros FROM %s"+
			" WHERE segments.date BETWEEN '%s' AND '%s' ORDER BY metrics.clicks DESC",
		dimensions, resource, dr.StartString(), dr.EndString())
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	return query
}
