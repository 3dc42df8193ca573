package naming

import (
	"html"
	"strings"
)

// Suffixes recognized as archive/image extensions during normalization.
var knownExtensions = []string{
	".cbz", ".zip", ".cbr", ".rar", ".7z", ".pdf", ".epub",
	".png", ".jpg", ".jpeg", ".gif", ".xml", ".txt",
}

// DecodePercent resolves %XX escapes. Invalid sequences pass through
// literally, and a % with fewer than two characters after it is kept
// verbatim. Listing paths on the site carry stray percent signs, so this
// must never reject input.
func DecodePercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	b := []byte(s)
	out := make([]byte, 0, len(b))

	for i := 0; i < len(b); i++ {
		if b[i] == '%' && i+2 < len(b) {
			hi, ok1 := hexVal(b[i+1])
			lo, ok2 := hexVal(b[i+2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, b[i])
	}

	return string(out)
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}

	return 0, false
}

func stripExtension(s string) string {
	low := strings.ToLower(s)
	for _, ext := range knownExtensions {
		if strings.HasSuffix(low, ext) {
			return s[:len(s)-len(ext)]
		}
	}

	return s
}

// Normalize prepares a filename or series title for comparison: percent
// escapes and HTML entities are decoded, at most one known extension is
// stripped, and the result is lowercased and trimmed.
func Normalize(s string) string {
	s = DecodePercent(s)
	s = html.UnescapeString(s)
	s = stripExtension(s)

	return strings.TrimSpace(strings.ToLower(s))
}
