// Package timeutil parses the day windows used by reports.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is used when no window is given.
const DefaultWindow = "1w"

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units   = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseWindow parses a window such as "3d", "2w" or "1w2d" into a number of
// days and a compact label. Journals are kept per day, so finer units are
// rejected.
func ParseWindow(input string) (int, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	days := 0
	for len(remaining) > 0 {
		m := segment.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q, use d or w", m[2])
		}
		days += n * unit
		remaining = remaining[len(m[0]):]
	}

	if days <= 0 {
		return 0, "", fmt.Errorf("window must be at least one day")
	}
	return days, FormatWindow(days), nil
}

// FormatWindow renders days as weeks and days.
func FormatWindow(days int) string {
	if days <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}

// Since returns the first day of a window of days ending on until. A one-day
// window covers only until's day.
func Since(until time.Time, days int) time.Time {
	return until.AddDate(0, 0, -(days - 1))
}
