package report

import (
	"strconv"
	"strings"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
)

// Field binds a supported field path to its column header and extraction
// function. The set of fields is closed: every path a report may select is
// declared here, and resolving an undeclared path is a configuration error
// rather than a silently empty column.
type Field struct {
	Path    string
	Header  string
	Extract func(ads.Row) any
}

var fieldRegistry = map[string]Field{}

func register(path, header string, extract func(ads.Row) any) {
	fieldRegistry[path] = Field{Path: path, Header: header, Extract: extract}
}

func init() {
	register("segments.date", "Date", stringAt("segments.date"))
	register("segments.conversion_action_name", "Conversion Action Name", stringAt("segments.conversion_action_name"))

	register("campaign.id", "Campaign ID", intAt("campaign.id"))
	register("campaign.name", "Campaign Name", stringAt("campaign.name"))
	register("campaign.advertising_channel_type", "Channel Type", stringAt("campaign.advertising_channel_type"))
	register("campaign.ai_max_setting.enable_ai_max", "AI Max Enabled", boolAt("campaign.ai_max_setting.enable_ai_max"))
	register("ai_max_search_term_ad_combination_view.search_term", "Search Term",
		stringAt("ai_max_search_term_ad_combination_view.search_term"))

	register("shared_set.id", "Shared Set ID", intAt("shared_set.id"))
	register("shared_set.name", "Shared Set Name", stringAt("shared_set.name"))
	register("shared_set.type", "Shared Set Type", stringAt("shared_set.type"))

	register("ad_group.id", "Ad Group ID", intAt("ad_group.id"))
	register("ad_group.name", "Ad Group Name", stringAt("ad_group.name"))
	register("ad_group_criterion.keyword.text", "Keyword Text", stringAt("ad_group_criterion.keyword.text"))
	register("ad_group_criterion.keyword.match_type", "Match Type", stringAt("ad_group_criterion.keyword.match_type"))

	register("metrics.conversions", "Conversions", floatAt("metrics.conversions"))
	register("metrics.all_conversions", "All Conversions", floatAt("metrics.all_conversions"))
	register("metrics.conversions_value", "Conversions Value", floatAt("metrics.conversions_value"))
	register("metrics.all_conversions_value", "All Conversions Value", floatAt("metrics.all_conversions_value"))
	register("metrics.clicks", "Clicks", intAt("metrics.clicks"))
	register("metrics.impressions", "Impressions", intAt("metrics.impressions"))
	register("metrics.cost_micros", "Cost (micros)", intAt("metrics.cost_micros"))

	register("ad_group_ad.ad.id", "Ad ID", intAt("ad_group_ad.ad.id"))
	register("ad_group_ad.ad.type", "Ad Type", stringAt("ad_group_ad.ad.type"))
	register("ad_group_ad.policy_summary.approval_status", "Approval Status", stringAt("ad_group_ad.policy_summary.approval_status"))
	register("ad_group_ad.policy_summary.policy_topics", "Policy Topic", policyEntryField("topic"))
	register("ad_group_ad.policy_summary.policy_types", "Policy Type", policyEntryField("type"))
	register("ad_group_ad.policy_summary.evidence_texts", "Evidence Text", policyEvidenceTexts)

	register("change_status.resource_name", "Resource Name", stringAt("change_status.resource_name"))
	register("change_status.last_change_date_time", "Change Date/Time", stringAt("change_status.last_change_date_time"))
	register("change_status.resource_type", "Resource Type", stringAt("change_status.resource_type"))
	register("change_status.resource_status", "Resource Status", stringAt("change_status.resource_status"))

	register("conversion_action.id", "ID", intAt("conversion_action.id"))
	register("conversion_action.name", "Name", stringAt("conversion_action.name"))
	register("conversion_action.status", "Status", stringAt("conversion_action.status"))
	register("conversion_action.type", "Type", stringAt("conversion_action.type"))
	register("conversion_action.category", "Category", stringAt("conversion_action.category"))
	register("conversion_action.owner_customer", "Owner", stringAt("conversion_action.owner_customer"))
	register("conversion_action.include_in_conversions_metric", "Include in Conversions Metric", boolAt("conversion_action.include_in_conversions_metric"))
	register("conversion_action.click_through_lookback_window_days", "Click-Through Lookback Window", intAt("conversion_action.click_through_lookback_window_days"))
	register("conversion_action.view_through_lookback_window_days", "View-Through Lookback Window", intAt("conversion_action.view_through_lookback_window_days"))
	register("conversion_action.attribution_model_settings.attribution_model", "Attribution Model", stringAt("conversion_action.attribution_model_settings.attribution_model"))
	register("conversion_action.attribution_model_settings.data_driven_model_status", "Data-Driven Model Status", stringAt("conversion_action.attribution_model_settings.data_driven_model_status"))

	register("expanded_landing_page_view.expanded_final_url", "Expanded Landing Page URL", stringAt("expanded_landing_page_view.expanded_final_url"))

	for _, prefix := range []string{
		"offline_conversion_upload_client_summary",
		"offline_conversion_upload_conversion_action_summary",
	} {
		register(prefix+".resource_name", "Resource Name", stringAt(prefix+".resource_name"))
		register(prefix+".status", "Status", stringAt(prefix+".status"))
		register(prefix+".total_event_count", "Total Event Count", intAt(prefix+".total_event_count"))
		register(prefix+".successful_event_count", "Successful Event Count", intAt(prefix+".successful_event_count"))
		register(prefix+".success_rate", "Success Rate", floatAt(prefix+".success_rate"))
		register(prefix+".last_upload_date_time", "Last Upload Time", stringAt(prefix+".last_upload_date_time"))
	}
	register("offline_conversion_upload_conversion_action_summary.conversion_action_name", "Conversion Action Name",
		stringAt("offline_conversion_upload_conversion_action_summary.conversion_action_name"))
	register("offline_conversion_upload_conversion_action_summary.failed_event_count", "Failed Event Count",
		failedEventCount("offline_conversion_upload_conversion_action_summary"))
}

// Fields resolves field paths against the registry, preserving input order.
func Fields(paths ...string) ([]Field, error) {
	fields := make([]Field, 0, len(paths))
	for _, path := range paths {
		f, ok := fieldRegistry[path]
		if !ok {
			return nil, domain.NewConfigurationError("unsupported report field %q", path)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// FieldsForMetrics maps bare metric names to their registry paths.
func FieldsForMetrics(metrics []string) []string {
	paths := make([]string, 0, len(metrics))
	for _, m := range metrics {
		if m == "segments.conversion_action_name" {
			paths = append(paths, m)
			continue
		}
		paths = append(paths, "metrics."+m)
	}
	return paths
}

func stringAt(path string) func(ads.Row) any {
	return func(r ads.Row) any {
		v, ok := r.Get(path)
		if !ok {
			return ""
		}
		s, _ := v.(string)
		return s
	}
}

// intAt reads an integer field. The wire encodes 64-bit integers as JSON
// strings, so both representations are accepted.
func intAt(path string) func(ads.Row) any {
	return func(r ads.Row) any {
		v, ok := r.Get(path)
		if !ok {
			return int64(0)
		}
		switch n := v.(type) {
		case string:
			parsed, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return int64(0)
			}
			return parsed
		case float64:
			return int64(n)
		default:
			return int64(0)
		}
	}
}

func floatAt(path string) func(ads.Row) any {
	return func(r ads.Row) any {
		v, ok := r.Get(path)
		if !ok {
			return float64(0)
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			parsed, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return float64(0)
			}
			return parsed
		default:
			return float64(0)
		}
	}
}

func boolAt(path string) func(ads.Row) any {
	return func(r ads.Row) any {
		v, ok := r.Get(path)
		if !ok {
			return false
		}
		b, _ := v.(bool)
		return b
	}
}

// failedEventCount derives the failure count from the totals. The API reports
// only total and successful event counts per upload summary.
func failedEventCount(prefix string) func(ads.Row) any {
	total := intAt(prefix + ".total_event_count")
	successful := intAt(prefix + ".successful_event_count")
	return func(r ads.Row) any {
		return total(r).(int64) - successful(r).(int64)
	}
}

// policyEntryField joins one attribute across all policy topic entries of a
// row. Multi-valued data is flattened to a single "; "-separated cell; that
// loss is intentional for tabular output.
func policyEntryField(key string) func(ads.Row) any {
	return func(r ads.Row) any {
		var values []string
		for _, entry := range policyEntries(r) {
			if s, ok := entry[key].(string); ok {
				values = append(values, s)
			}
		}
		return strings.Join(values, "; ")
	}
}

func policyEvidenceTexts(r ads.Row) any {
	var texts []string
	for _, entry := range policyEntries(r) {
		evidences, _ := entry["evidences"].([]any)
		for _, ev := range evidences {
			obj, ok := ev.(map[string]any)
			if !ok {
				continue
			}
			textList, _ := obj["textList"].(map[string]any)
			list, _ := textList["texts"].([]any)
			for _, t := range list {
				if s, ok := t.(string); ok {
					texts = append(texts, s)
				}
			}
		}
	}
	return strings.Join(texts, "; ")
}

func policyEntries(r ads.Row) []map[string]any {
	v, ok := r.Get("ad_group_ad.policy_summary.policy_topic_entries")
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	entries := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			entries = append(entries, obj)
		}
	}
	return entries
}
