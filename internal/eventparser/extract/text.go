package extract

import (
	"regexp"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)

// Lines splits recognized text into trimmed, non-empty lines. Inner
// whitespace is kept as recognized.
func Lines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		out = append(out, clean)
	}
	return out
}

// collapseLines trims every line, squeezes runs of horizontal whitespace and
// drops empty lines.
func collapseLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		clean := strings.TrimSpace(multiSpaceRE.ReplaceAllString(line, " "))
		if clean == "" {
			continue
		}
		out = append(out, clean)
	}
	return strings.Join(out, "\n")
}
