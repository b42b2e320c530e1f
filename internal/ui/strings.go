package ui

import (
	"strconv"
	"strings"
	"time"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// stars renders a 1..5 rating; nil renders as unrated.
func stars(rating *int) string {
	if rating == nil {
		return "·····"
	}
	n := min(max(*rating, 0), 5)
	return strings.Repeat("★", n) + strings.Repeat("·", 5-n)
}

// average renders an average rating with one decimal.
func average(v *float64, count int) string {
	if v == nil {
		return ""
	}
	out := strconv.FormatFloat(*v, 'f', 1, 64)
	if count > 0 {
		out += " (" + strconv.Itoa(count) + ")"
	}
	return out
}

// humanizeDuration renders d coarsely: 12s, 5m, 2h 3m, 1d.
func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return strconv.Itoa(int(d.Seconds())) + "s"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return strconv.Itoa(h) + "h"
		}
		return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d"
	}
}
