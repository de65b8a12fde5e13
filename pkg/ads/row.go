package ads

import "strings"

// Row is one decoded result object. Sub-objects mirror the query's selected
// field paths; the REST transport uses lowerCamel JSON keys, so Get converts
// snake_case path segments before descending.
type Row map[string]any

// Get resolves a dotted field path like "campaign.id" or
// "ad_group_ad.policy_summary.approval_status". The second return is false
// when any segment is absent.
func (r Row) Get(path string) (any, bool) {
	var current any = map[string]any(r)
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[jsonKey(segment)]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func jsonKey(segment string) string {
	parts := strings.Split(segment, "_")
	if len(parts) == 1 {
		return segment
	}
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
