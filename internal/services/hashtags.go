package services

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractHashtags returns the lower-cased hashtags in content, '#' included,
// deduplicated in order of first occurrence.
func ExtractHashtags(content string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, match := range hashtagPattern.FindAllString(content, -1) {
		tag := strings.ToLower(match)
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
