package madokami

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dvkhr/madodl/internal/providers"
)

const uploadTimeLayout = "2006-01-02 15:04"

func (s *Scraper) Chapters(ctx context.Context, path string) ([]providers.Chapter, error) {
	doc, err := s.fetchDOM(ctx, s.abs(path))
	if err != nil {
		return nil, err
	}

	title := TitleFromPath(path)

	var out []providers.Chapter
	doc.Find("table#index-table > tbody > tr").Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find("td:nth-child(1) a").First().Text())
		if name == "" || strings.HasSuffix(name, "/") || strings.HasPrefix(name, "!") {
			return
		}

		// Rows without a reader link are not readable archives.
		href, ok := row.Find("td:nth-child(6) a").First().Attr("href")
		if !ok {
			return
		}
		idx := strings.LastIndex(href, "/reader")
		if idx < 0 {
			return
		}
		readerURL := s.baseURL + href[idx:]

		date, _ := time.Parse(uploadTimeLayout, strings.TrimSpace(row.Find("td:nth-child(3)").First().Text()))

		info := s.parser.Parse(name, title)

		number, volume := -1.0, -1.0
		if info.Chapter > 0 {
			number = info.Chapter
		}
		if info.Volume > 0 {
			volume = info.Volume
		}

		if info.Range != nil {
			for n := int(info.Range.Start); n <= int(info.Range.End); n++ {
				out = append(out, providers.Chapter{
					URL:    readerURL,
					Title:  fmt.Sprintf("Chapter %d", n),
					Number: float64(n),
					Volume: volume,
					Date:   date,
					Label:  strconv.Itoa(n),
				})
			}

			return
		}

		out = append(out, providers.Chapter{
			URL:    readerURL,
			Title:  name,
			Number: number,
			Volume: volume,
			Date:   date,
			Label:  chapterLabel(number),
		})
	})

	// Directory listings run oldest first.
	slices.Reverse(out)

	return out, nil
}

func chapterLabel(n float64) string {
	if n < 0 {
		return ""
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}
