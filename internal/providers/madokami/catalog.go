package madokami

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dvkhr/madodl/internal/providers"
)

func (s *Scraper) Recent(ctx context.Context) ([]providers.Series, error) {
	doc, err := s.fetchDOM(ctx, s.baseURL+"/recent")
	if err != nil {
		return nil, err
	}

	return collectSeries(doc, "table.mobile-files-table tbody tr td:nth-child(1) a:nth-child(1)"), nil
}

func (s *Scraper) Search(ctx context.Context, query string) ([]providers.Series, error) {
	doc, err := s.fetchDOM(ctx, s.baseURL+"/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	return collectSeries(doc, "div.container table tbody tr td:nth-child(1) a:nth-child(1)"), nil
}

func collectSeries(doc *goquery.Document, selector string) []providers.Series {
	var out []providers.Series
	seen := map[string]bool{}

	doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasSuffix(href, "/") {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true

		title := TitleFromPath(href)
		if title == "" {
			return
		}

		out = append(out, providers.Series{Title: title, Path: href})
	})

	return out
}

func (s *Scraper) Details(ctx context.Context, path string) (providers.SeriesDetails, error) {
	doc, err := s.fetchDOM(ctx, s.abs(path))
	if err != nil {
		return providers.SeriesDetails{}, err
	}

	d := providers.SeriesDetails{
		Series: providers.Series{Title: TitleFromPath(path), Path: path},
	}

	d.Cover, _ = doc.Find(`div.manga-info img[itemprop="image"]`).First().Attr("src")

	var authors []string
	doc.Find(`a[itemprop="author"]`).Each(func(_ int, a *goquery.Selection) {
		if t := strings.TrimSpace(a.Text()); t != "" {
			authors = append(authors, t)
		}
	})
	d.Authors = strings.Join(authors, ", ")

	doc.Find("div.genres a.tag").Each(func(_ int, a *goquery.Selection) {
		if t := strings.TrimSpace(a.Text()); t != "" {
			d.Tags = append(d.Tags, t)
		}
	})

	d.Completed = strings.TrimSpace(doc.Find("span.scanstatus").First().Text()) == "Yes"

	return d, nil
}
