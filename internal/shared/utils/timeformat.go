package utils

import "fmt"

// FormatDuration converts seconds into a human-readable duration for retry
// guidance, e.g. "45 seconds", "2 hours 30 minutes", "2 weeks 3 days".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		return "invalid"
	}

	if seconds < 60 {
		return pluralize(seconds, "second")
	}

	minutes := seconds / 60
	seconds = seconds % 60

	if minutes < 60 {
		if seconds > 0 {
			return pluralize(minutes, "minute") + " " + pluralize(seconds, "second")
		}
		return pluralize(minutes, "minute")
	}

	hours := minutes / 60
	minutes = minutes % 60

	if hours < 24 {
		if minutes > 0 {
			return pluralize(hours, "hour") + " " + pluralize(minutes, "minute")
		}
		return pluralize(hours, "hour")
	}

	days := hours / 24
	hours = hours % 24

	if days < 7 {
		if hours > 0 {
			return pluralize(days, "day") + " " + pluralize(hours, "hour")
		}
		return pluralize(days, "day")
	}

	weeks := days / 7
	days = days % 7

	if days > 0 {
		return pluralize(weeks, "week") + " " + pluralize(days, "day")
	}
	return pluralize(weeks, "week")
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
