package chapters

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dvkhr/madodl/internal/naming"
	"github.com/dvkhr/madodl/internal/providers"
)

type Chapter struct {
	providers.Chapter
	Series string
}

func Wrap(series string, list []providers.Chapter) []Chapter {
	out := make([]Chapter, 0, len(list))
	for _, ch := range list {
		out = append(out, Chapter{Chapter: ch, Series: series})
	}

	return out
}

func sanitize(s string) string {
	s = strings.ToLower(s)

	repl := []string{
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"(", "",
		")", "",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = string(clean)

	reUnderscore := regexp.MustCompile(`_+`)
	s = reUnderscore.ReplaceAllString(s, "_")

	return strings.Trim(s, "_")
}

func formatChapter(n float64) string {
	if n == math.Trunc(n) {
		return fmt.Sprintf("%03d", int64(n))
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

func formatVolume(n float64) string {
	if n == math.Trunc(n) {
		return fmt.Sprintf("%02d", int64(n))
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (c Chapter) baseName() string {
	name := sanitize(c.Series)

	if c.Number >= 0 {
		name += "_c" + sanitize(formatChapter(c.Number))
	}
	if c.Volume >= 0 {
		name += "_v" + sanitize(formatVolume(c.Volume))
	}

	// Neither number survived parsing, fall back to the archive name.
	if c.Number < 0 && c.Volume < 0 {
		title := sanitize(naming.Normalize(c.Title))
		if strings.HasPrefix(title, name) {
			return strings.Trim(title, "_")
		}
		name += "_" + title
	}

	return strings.Trim(name, "_")
}

func (c Chapter) FolderName() string {
	return c.baseName() + "_tmp"
}

func (c Chapter) OutputCBZ() string {
	return c.baseName() + ".cbz"
}

func (c Chapter) OutputCBZPath(out string) string {
	return filepath.Join(out, c.OutputCBZ())
}
