package domain

import "fmt"

// ConfigurationError reports caller-supplied input the pipeline cannot act
// on: an under-specified date range, an unparsable date, an unsupported
// report type or field path. Commands treat it as fatal.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
