package extract

import (
	"strings"
)

var locationKeywords = []string{
	"at ",
	"location:",
	"venue:",
	"room ",
	"building",
	"address:",
	"place:",
}

// ExtractLocation returns the first line mentioning a location keyword.
// The whole line is returned, not just the text after the keyword.
func ExtractLocation(lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range locationKeywords {
			if strings.Contains(lower, kw) {
				return line
			}
		}
	}
	return ""
}
