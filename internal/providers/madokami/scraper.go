package madokami

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dvkhr/madodl/internal/naming"
	"github.com/dvkhr/madodl/internal/providers"
	"github.com/dvkhr/madodl/internal/util"
)

const DefaultBaseURL = "https://manga.madokami.al"

type Scraper struct {
	client  *http.Client
	baseURL string
	parser  *naming.Parser
}

var _ providers.Source = (*Scraper)(nil)

func NewScraper(c *http.Client, baseURL string, parser *naming.Parser) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if parser == nil {
		parser = naming.NewParser(naming.DefaultExclusions(), naming.DefaultYearMin)
	}

	return &Scraper{
		client:  c,
		baseURL: strings.TrimRight(baseURL, "/"),
		parser:  parser,
	}
}

func (s *Scraper) BaseURL() string {
	return s.baseURL
}

// abs turns a server-side path into an absolute URL on the configured host.
func (s *Scraper) abs(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return s.baseURL + path
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := util.DoWithRetry(s.client, req, 3, 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("GET %s: authentication failed, check username and password", target)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", target, resp.Status)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
