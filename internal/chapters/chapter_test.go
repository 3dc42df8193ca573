package chapters

import (
	"path/filepath"
	"testing"

	"github.com/dvkhr/madodl/internal/providers"
	"github.com/stretchr/testify/assert"
)

func TestOutputCBZ(t *testing.T) {
	tests := []struct {
		name    string
		chapter Chapter
		want    string
	}{
		{
			"chapter only",
			Chapter{Series: "Berserk", Chapter: providers.Chapter{Number: 5, Volume: -1}},
			"berserk_c005.cbz",
		},
		{
			"volume only",
			Chapter{Series: "Berserk", Chapter: providers.Chapter{Number: -1, Volume: 1}},
			"berserk_v01.cbz",
		},
		{
			"chapter and volume",
			Chapter{Series: "Vinland Saga", Chapter: providers.Chapter{Number: 51, Volume: 8}},
			"vinland_saga_c051_v08.cbz",
		},
		{
			"fractional chapter",
			Chapter{Series: "Onepunch-Man", Chapter: providers.Chapter{Number: 29.5, Volume: -1}},
			"onepunch_man_c29_5.cbz",
		},
		{
			"large chapter unpadded",
			Chapter{Series: "Hunter x Hunter", Chapter: providers.Chapter{Number: 400, Volume: -1}},
			"hunter_x_hunter_c400.cbz",
		},
		{
			"no numbers falls back to archive name",
			Chapter{Series: "Berserk", Chapter: providers.Chapter{Title: "Berserk Guidebook.cbz", Number: -1, Volume: -1}},
			"berserk_guidebook.cbz",
		},
		{
			"no numbers with unrelated archive name",
			Chapter{Series: "Berserk", Chapter: providers.Chapter{Title: "Artbook.zip", Number: -1, Volume: -1}},
			"berserk_artbook.cbz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chapter.OutputCBZ())
		})
	}
}

func TestFolderName(t *testing.T) {
	c := Chapter{Series: "Berserk", Chapter: providers.Chapter{Number: 5, Volume: -1}}
	assert.Equal(t, "berserk_c005_tmp", c.FolderName())
}

func TestOutputCBZPath(t *testing.T) {
	c := Chapter{Series: "Berserk", Chapter: providers.Chapter{Number: 5, Volume: -1}}
	assert.Equal(t, filepath.Join("out", "berserk_c005.cbz"), c.OutputCBZPath("out"))
}

func TestWrap(t *testing.T) {
	list := []providers.Chapter{{Number: 1, Volume: -1}, {Number: 2, Volume: -1}}

	wrapped := Wrap("Berserk", list)
	assert.Len(t, wrapped, 2)
	assert.Equal(t, "Berserk", wrapped[0].Series)
	assert.InDelta(t, 2.0, wrapped[1].Number, 1e-9)
}
