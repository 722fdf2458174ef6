package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatClock converts an HH:MM 24-hour string to a 12-hour label,
// "13:05" -> "1:05 PM". Unparseable input is returned unchanged.
func formatClock(t string) string {
	if t == "" {
		return ""
	}
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return t
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return t
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return t
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

// timeLabel shows just the start time, or a range when an end time exists.
func timeLabel(start, end string) string {
	startLabel := formatClock(start)
	endLabel := formatClock(end)
	if endLabel == "" {
		return startLabel
	}
	return startLabel + " - " + endLabel
}

// dateLabel expands YYYY-MM-DD into a friendly header like
// "Saturday, April 4, 2026". Unparseable dates pass through unchanged.
func dateLabel(date string) string {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// locationLabel joins venue and field the way the site displays them.
func locationLabel(location, field string) string {
	switch {
	case location == "":
		return field
	case field == "":
		return location
	default:
		return location + " - " + field
	}
}

// divisionCode derives a CSS badge token from a division label:
// the first word, lowercased, stripped of anything non-alphanumeric.
func divisionCode(division string) string {
	first, _, _ := strings.Cut(division, " ")
	var b strings.Builder
	for _, r := range strings.ToLower(first) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
