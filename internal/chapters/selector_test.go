package chapters

import (
	"testing"

	"github.com/dvkhr/madodl/internal/providers"
	"github.com/stretchr/testify/assert"
)

func labeled(labels ...string) []Chapter {
	out := make([]Chapter, 0, len(labels))
	for _, l := range labels {
		out = append(out, Chapter{Chapter: providers.Chapter{Label: l}})
	}

	return out
}

func TestFilterByLabel(t *testing.T) {
	all := labeled("1", "2", "29.5", "30")

	got := Filter(all, "29.5", "", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "29.5", got[0].Label)

	// Numeric comparison tolerates different spellings.
	got = Filter(all, "2.0", "", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Label)

	got = Filter(all, "02", "", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Label)
}

func TestFilterIndexFallback(t *testing.T) {
	all := labeled("", "", "")

	got := Filter(all, "2", "", "")
	assert.Len(t, got, 1)
	assert.Equal(t, all[1], got[0])

	assert.Empty(t, Filter(all, "9", "", ""))
	assert.Empty(t, Filter(all, "nope", "", ""))
}

func TestFilterRange(t *testing.T) {
	all := labeled("1", "2", "3", "4")

	got := Filter(all, "", "2-3", "")
	assert.Len(t, got, 2)
	assert.Equal(t, "2", got[0].Label)
	assert.Equal(t, "3", got[1].Label)

	assert.Nil(t, Filter(all, "", "3", ""))
	assert.Nil(t, Filter(all, "", "0-2", ""))
	assert.Nil(t, Filter(all, "", "3-2", ""))
	assert.Nil(t, Filter(all, "", "1-9", ""))
}

func TestFilterList(t *testing.T) {
	all := labeled("1", "2", "3", "4")

	got := Filter(all, "", "", "1, 3")
	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Label)
	assert.Equal(t, "3", got[1].Label)

	// Junk entries and out-of-range indexes are skipped.
	got = Filter(all, "", "", " 2, x, 9 ")
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Label)
}

func TestFilterDefault(t *testing.T) {
	all := labeled("1", "2")
	assert.Equal(t, all, Filter(all, "", "", ""))
}

func TestFilterPrecedence(t *testing.T) {
	all := labeled("1", "2", "3")

	// An explicit chapter wins over range and list.
	got := Filter(all, "3", "1-2", "1,2")
	assert.Len(t, got, 1)
	assert.Equal(t, "3", got[0].Label)
}
