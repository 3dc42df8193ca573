package madokami

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func (s *Scraper) Pages(ctx context.Context, readerURL string) ([]string, error) {
	doc, err := s.fetchDOM(ctx, s.abs(readerURL))
	if err != nil {
		return nil, err
	}

	reader := doc.Find("div#reader").First()

	dataPath, okPath := reader.Attr("data-path")
	dataFiles, okFiles := reader.Attr("data-files")

	if okPath && okFiles {
		var files []string
		if err := json.Unmarshal([]byte(dataFiles), &files); err != nil {
			return nil, fmt.Errorf("reader file list: %w", err)
		}

		out := make([]string, 0, len(files))
		for _, f := range files {
			out = append(out, s.baseURL+"/reader/image?path="+url.QueryEscape(dataPath)+"&file="+url.QueryEscape(f))
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("reader at %s lists no pages", readerURL)
		}

		return out, nil
	}

	// No file list attributes, scan the reader markup for images.
	var out []string
	reader.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			return
		}

		out = append(out, s.abs(src))
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("no pages found at %s", readerURL)
	}

	return out, nil
}
