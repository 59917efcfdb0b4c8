package catalog

import "strings"

// ResolvePoster picks the first usable poster: primary, then secondary, then
// the static placeholder.
func ResolvePoster(primary, secondary string) string {
	for _, candidate := range []string{primary, secondary} {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" && !IsPlaceholder(candidate) {
			return candidate
		}
	}
	return PlaceholderPoster
}
