package intent

import (
	"fmt"
	"regexp"
	"time"

	"qwikko-assistant/internal/platform"
)

var digitsRe = regexp.MustCompile(`\d+`)

// firstDigits extracts the first run of digits from a message, or "".
func firstDigits(s string) string {
	return digitsRe.FindString(s)
}

// formatDate renders a backend timestamp for display. Unparseable values
// pass through; empty values become "N/A".
func formatDate(s string) string {
	if s == "" {
		return "N/A"
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("1/2/2006, 3:04:05 PM")
		}
	}
	return s
}

// usd renders a dollar amount, or "N/A" when absent.
func usd(a platform.Amount) string {
	if !a.Valid() {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", a.Value())
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
