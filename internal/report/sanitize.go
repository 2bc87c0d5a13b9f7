package report

import (
	"strings"
	"unicode/utf8"
)

// maxFilenameLen caps generated names below common filesystem limits
const maxFilenameLen = 180

var filenameReplacer = strings.NewReplacer(
	"\\", "_",
	"/", "_",
	"*", "_",
	"?", "_",
	":", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFilename replaces characters illegal in file paths with
// underscores. Total over any input, never fails.
func SanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)
	if len(s) > maxFilenameLen {
		// Back up to a rune boundary so species names in other
		// alphabets never truncate into invalid UTF-8
		cut := maxFilenameLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}
