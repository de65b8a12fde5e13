package ads

import (
	"fmt"
	"strings"
)

// ErrorDetail is one field-level error entry from a failed request.
type ErrorDetail struct {
	Message   string
	FieldPath string
}

// RequestError reports a failed platform RPC. It is never retried here;
// single-fetch commands treat it as fatal, the concurrent fetcher records it
// per task.
type RequestError struct {
	RequestID string
	Status    string
	Details   []ErrorDetail
}

func (e *RequestError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "request %q failed with status %q", e.RequestID, e.Status)
	for i, d := range e.Details {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(d.Message)
		if d.FieldPath != "" {
			fmt.Fprintf(&sb, " (field: %s)", d.FieldPath)
		}
	}
	return sb.String()
}

// Diagnostic renders the multi-line form printed by commands.
func (e *RequestError) Diagnostic() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Request with ID %q failed with status %q and includes the following errors:\n", e.RequestID, e.Status)
	for _, d := range e.Details {
		fmt.Fprintf(&sb, "\tError with message %q.\n", d.Message)
		if d.FieldPath != "" {
			fmt.Fprintf(&sb, "\t\tOn field: %s\n", d.FieldPath)
		}
	}
	return sb.String()
}
