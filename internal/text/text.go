// Package text normalizes raw model output into a commit message.
package text

import (
	"regexp"
	"strings"
)

// DefaultDelimiter joins the normalized lines when no delimiter is given.
const DefaultDelimiter = "\n"

var newline = regexp.MustCompile(`\r?\n`)

// TrimNewLines drops blank lines at both ends of raw and joins the remaining
// lines with delimiter. Blank lines between paragraphs are kept.
func TrimNewLines(raw, delimiter string) string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	lines := newline.Split(raw, -1)

	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}
	end := len(lines)
	for end > start && isBlank(lines[end-1]) {
		end--
	}

	return strings.Join(lines[start:end], delimiter)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
