package survey

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bbest/seagrass-dwc/internal/errors"
)

const dateLayout = "2006-01-02"

// timestampLayouts are the collection time formats seen across survey years.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// siteIDWidth is the fixed width numeric site identifiers are padded to.
const siteIDWidth = 5

// parseDate parses a calendar date. A date that fails to parse is a fatal
// data-integrity error since identifier derivation depends on it.
func parseDate(value, file string, row int) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errors.Newf("invalid date %q: %w", value, err).
			Category(errors.CategoryValidation).
			Component("survey").
			FileContext(file, row).
			Build()
	}
	return t, nil
}

// parseTimestamp parses a collection timestamp, trying each known layout.
// Empty or unparseable values are absent, never zero.
func parseTimestamp(value string, log *slog.Logger) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	if log != nil {
		log.Warn("unparseable timestamp treated as absent", "value", value)
	}
	return nil
}

// parseFloat parses a numeric measurement field. Empty or unparseable values
// are absent, never zero.
func parseFloat(value string, log *slog.Logger) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if log != nil {
			log.Warn("unparseable numeric field treated as absent", "value", value)
		}
		return nil
	}
	return &f
}

// parseBool parses the sample-collected flag. Anything other than an
// affirmative value is false.
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// padSiteID left-pads short all-digit site identifiers with zeros to the
// fixed five character width. Alphanumeric identifiers pass through as is.
func padSiteID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) >= siteIDWidth {
		return id
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return id
		}
	}
	return strings.Repeat("0", siteIDWidth-len(id)) + id
}
