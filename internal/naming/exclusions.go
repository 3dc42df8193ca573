package naming

import (
	"bufio"
	_ "embed"
	"io"
	"strings"
)

//go:embed exclusions.txt
var bundledExclusions string

// Exclusions is a set of series titles whose names contain digits that
// must not be read as chapter or volume numbers (e.g. "Ichigo 100%").
// Lookups are case-insensitive exact matches on the trimmed title, never
// substring searches.
type Exclusions struct {
	titles map[string]struct{}
}

func NewExclusions(titles []string) *Exclusions {
	e := &Exclusions{titles: make(map[string]struct{}, len(titles))}
	for _, t := range titles {
		e.Add(t)
	}

	return e
}

func (e *Exclusions) Add(title string) {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return
	}

	e.titles[t] = struct{}{}
}

func (e *Exclusions) Contains(title string) bool {
	if e == nil || len(e.titles) == 0 {
		return false
	}

	_, ok := e.titles[strings.ToLower(strings.TrimSpace(title))]
	return ok
}

func (e *Exclusions) Len() int {
	if e == nil {
		return 0
	}

	return len(e.titles)
}

// AddFrom appends titles read from r, one per line. Lines are trimmed
// and blank lines skipped.
func (e *Exclusions) AddFrom(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		e.Add(sc.Text())
	}

	return sc.Err()
}

// ReadExclusions parses a list with one title per line.
func ReadExclusions(r io.Reader) (*Exclusions, error) {
	e := NewExclusions(nil)
	if err := e.AddFrom(r); err != nil {
		return nil, err
	}

	return e, nil
}

// DefaultExclusions returns the list bundled with the binary.
func DefaultExclusions() *Exclusions {
	e, _ := ReadExclusions(strings.NewReader(bundledExclusions))
	return e
}
