package catalog

import (
	"strconv"
	"strings"
)

// NoRunningTime is shown when the running time is missing or not a number.
const NoRunningTime = "No running time data"

// FormatRunningTime renders a minute count such as "125" as "2hours 5minutes".
// Zero-valued components are omitted, so "0" renders as the empty string.
func FormatRunningTime(minutes string) string {
	if minutes == "" || strings.IndexFunc(minutes, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return NoRunningTime
	}
	total, err := strconv.Atoi(minutes)
	if err != nil {
		return NoRunningTime
	}

	hours, mins := total/60, total%60
	parts := make([]string, 0, 2)
	if hours > 0 {
		parts = append(parts, strconv.Itoa(hours)+plural(hours, "hour", "hours"))
	}
	if mins > 0 {
		parts = append(parts, strconv.Itoa(mins)+plural(mins, "minute", "minutes"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
