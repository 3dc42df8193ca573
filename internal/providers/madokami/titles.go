package madokami

import (
	"strings"

	"github.com/dvkhr/madodl/internal/naming"
)

// TitleFromPath derives a display title from a directory path. Segments
// are walked from the right; empty ones, admin markers ("!recent" and
// friends) and VIZBIG omnibus folders are skipped so the actual series
// folder wins.
func TitleFromPath(p string) string {
	p = strings.TrimRight(p, "/")

	segments := strings.Split(p, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := naming.DecodePercent(segments[i])
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "!") || strings.Contains(seg, "VIZBIG") {
			continue
		}

		return seg
	}

	return ""
}
