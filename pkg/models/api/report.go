package api

// ReportDefinition describes one canned report exposed by the API.
type ReportDefinition struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ReportTable is a flattened report in wire form. Rows hold rendered cell
// values aligned with Columns.
type ReportTable struct {
	Report  string     `json:"report"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Error is the JSON error body returned on request failures.
type Error struct {
	Error string `json:"error"`
}
