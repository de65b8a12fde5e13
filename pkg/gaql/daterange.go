package gaql

import (
	"time"

	"github.com/de-tools/ads-atlas/pkg/models/domain"
)

// Clock supplies "now" for preset resolution. Injected so query construction
// stays deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock used outside tests.
var SystemClock Clock = systemClock{}

// Date range presets accepted by ResolveDateRange.
const (
	PresetLast7Days   = "LAST_7_DAYS"
	PresetLast10Days  = "LAST_10_DAYS"
	PresetLast30Days  = "LAST_30_DAYS"
	PresetLast32Days  = "LAST_32_DAYS"
	PresetLastMonth   = "LAST_MONTH"
	PresetLast6Months = "LAST_6_MONTHS"
	PresetLastYear    = "LAST_YEAR"
)

// Presets lists the supported preset names in flag-help order.
func Presets() []string {
	return []string{
		PresetLast7Days,
		PresetLast10Days,
		PresetLast30Days,
		PresetLast32Days,
		PresetLastMonth,
		PresetLast6Months,
		PresetLastYear,
	}
}

const dateLayout = "2006-01-02"

// ResolveDateRange turns either an explicit start/end pair or a preset name
// into an inclusive date range. A preset takes precedence over explicit
// dates. Under-specified or unparsable input is a configuration error.
func ResolveDateRange(start, end, preset string, clock Clock) (domain.DateRange, error) {
	if clock == nil {
		clock = SystemClock
	}

	if preset != "" {
		return resolvePreset(preset, clock.Now())
	}

	if start == "" || end == "" {
		return domain.DateRange{}, domain.NewConfigurationError(
			"a date range must be specified either by preset or custom dates")
	}

	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.DateRange{}, domain.NewConfigurationError("invalid start date %q: expected YYYY-MM-DD", start)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return domain.DateRange{}, domain.NewConfigurationError("invalid end date %q: expected YYYY-MM-DD", end)
	}

	return domain.DateRange{Start: startDate, End: endDate}, nil
}

func resolvePreset(preset string, now time.Time) (domain.DateRange, error) {
	switch preset {
	case PresetLast7Days:
		return domain.DateRange{Start: now.AddDate(0, 0, -7), End: now}, nil
	case PresetLast10Days:
		return domain.DateRange{Start: now.AddDate(0, 0, -10), End: now}, nil
	case PresetLast30Days:
		return domain.DateRange{Start: now.AddDate(0, 0, -30), End: now}, nil
	case PresetLast32Days:
		return domain.DateRange{Start: now.AddDate(0, 0, -32), End: now}, nil
	case PresetLastMonth:
		// Full previous calendar month regardless of the current day.
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := firstOfMonth.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		return domain.DateRange{Start: start, End: end}, nil
	case PresetLast6Months:
		return domain.DateRange{Start: now.AddDate(0, 0, -180), End: now}, nil
	case PresetLastYear:
		return domain.DateRange{Start: now.AddDate(0, 0, -365), End: now}, nil
	default:
		return domain.DateRange{}, domain.NewConfigurationError("unknown date range preset %q", preset)
	}
}
