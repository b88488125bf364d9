package util

import "strings"

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] into a single dash, trimming dashes at either end
func Slugify(s string) string {
	s = strings.ToLower(s)

	var builder strings.Builder
	dash := false
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if dash && builder.Len() > 0 {
				builder.WriteRune('-')
			}
			builder.WriteRune(r)
			dash = false
		} else {
			dash = true
		}
	}

	return builder.String()
}
