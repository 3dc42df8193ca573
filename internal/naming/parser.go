package naming

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// numTolerance bounds the float comparison used to decide whether two digit
// runs name the same volume.
const numTolerance = 0.001

// DefaultYearMin is the smallest bare digit run treated as a year instead
// of a chapter number. Explicit c/v markers are never year-filtered.
const DefaultYearMin = 1900

type ChapterRange struct {
	Start float64
	End   float64
}

// ChapterInfo is the result of parsing one filename. The zero value means
// nothing was determined; callers usually map unset fields to -1. When
// Range is present, Chapter equals Range.Start and the caller expands one
// entry per integer chapter in the inclusive span.
type ChapterInfo struct {
	Chapter float64
	Volume  float64
	Range   *ChapterRange
}

// Parser extracts chapter and volume numbers from archive filenames. It
// holds only read-only configuration and is safe for concurrent use.
type Parser struct {
	exclusions *Exclusions
	yearMin    float64
}

// NewParser builds a parser with the given exclusion list and year guard.
// A nil exclusions value means no titles are excluded; yearMin <= 0
// disables the year guard.
func NewParser(exclusions *Exclusions, yearMin float64) *Parser {
	if exclusions == nil {
		exclusions = NewExclusions(nil)
	}

	return &Parser{exclusions: exclusions, yearMin: yearMin}
}

// Parse extracts chapter/volume information from filename, using the
// series title to tell title digits apart from numbering. Both inputs are
// normalized first. Parse cannot fail; when nothing can be extracted it
// returns the zero ChapterInfo.
//
// The heuristics run in a fixed order and the order matters: a filename
// can satisfy several of them with different answers, and the earlier ones
// are the more trustworthy.
func (p *Parser) Parse(filename, seriesTitle string) ChapterInfo {
	var info ChapterInfo

	name := Normalize(filename)
	title := Normalize(seriesTitle)

	// Release metadata like "(2020) (Digital) (LuCaZ)" sits after the
	// first " (". Everything past it is noise for numbering purposes.
	truncated := name
	if i := strings.Index(truncated, " ("); i >= 0 {
		truncated = strings.TrimSpace(truncated[:i])
	}

	// A file named exactly after the series is the series root.
	if truncated == title {
		return info
	}

	excluded := p.exclusions.Contains(title)

	// Volume marker, parenthesized form first, then the bare " v" form.
	// Digits must follow the marker directly or the candidate is dropped
	// ("vs", "saiyuki"). Volume digits never carry a decimal point.
	if i := strings.Index(truncated, "(v"); i >= 0 {
		if digits := digitRun(truncated[i+2:]); digits != "" {
			if v, err := strconv.ParseFloat(digits, 64); err == nil {
				info.Volume = v
			}
		}
	} else if i := strings.Index(truncated, " v"); i >= 0 {
		if digits := digitRun(truncated[i+2:]); digits != "" {
			if v, err := strconv.ParseFloat(digits, 64); err == nil {
				info.Volume = v
			}
		}
	}

	// The chapter section is whatever follows the last " - "; releases
	// name files "Title - chapter part".
	section := truncated
	hasDash := false
	if i := strings.LastIndex(truncated, " - "); i >= 0 {
		section = strings.TrimSpace(truncated[i+3:])
		hasDash = true
	}

	// A trailing " v01" restating the found volume is not a chapter.
	if info.Volume != 0 {
		if i := strings.LastIndex(section, " v"); i >= 0 {
			if digits := digitRun(section[i+2:]); digits != "" {
				if v, err := strconv.ParseFloat(digits, 64); err == nil && math.Abs(v-info.Volume) < numTolerance {
					section = strings.TrimSpace(section[:i])
				}
			}
		}
	}

	// Explicit "c" prefix, the strongest chapter signal. After a " - "
	// delimiter a "start-end" pair becomes an inclusive chapter range.
	if strings.HasPrefix(section, "c") {
		rest := strings.TrimLeftFunc(section[1:], unicode.IsSpace)
		if num, rng, ok := chapterNumberAt(rest, hasDash); ok {
			info.Chapter = num
			info.Range = rng
			return info
		}
	}

	// Excluded titles carry digits of their own, so bare-digit inference
	// below would misread the name. Only marker syntax applies to them.
	if excluded {
		return info
	}

	if digits := trailingNumber(section); digits != "" {
		if n, err := strconv.ParseFloat(digits, 64); err == nil {
			// "Title v01" repeats the volume digits at the end of the
			// section; without a " - " there is no separate chapter.
			if !hasDash && info.Volume != 0 && math.Abs(n-info.Volume) < numTolerance {
				return info
			}
			if !p.yearLike(n) {
				info.Chapter = n
				return info
			}
		}
	}

	// Title-prefix fallback for names with no separator at all.
	if !hasDash && strings.HasPrefix(truncated, title) {
		remaining := strings.TrimSpace(truncated[len(title):])
		if digits := leadingNumber(remaining); digits != "" {
			if n, err := strconv.ParseFloat(digits, 64); err == nil && !p.yearLike(n) {
				info.Chapter = n
				return info
			}
		}
	}

	return info
}

func (p *Parser) yearLike(n float64) bool {
	return p.yearMin > 0 && n >= p.yearMin
}

// chapterNumberAt reads the chapter number at the start of s. When
// afterDash is set, "start-end" digit pairs are recognized as ranges.
func chapterNumberAt(s string, afterDash bool) (float64, *ChapterRange, bool) {
	if afterDash {
		run := numberRangeRun(s)
		if parts := strings.Split(run, "-"); len(parts) == 2 {
			start, ok1 := parseNumber(parts[0])
			end, ok2 := parseNumber(parts[1])
			if ok1 && ok2 {
				return start, &ChapterRange{Start: start, End: end}, true
			}
		}
	}

	num, ok := parseNumber(leadingNumber(s))
	if !ok {
		return 0, nil, false
	}

	return num, nil, true
}

func parseNumber(s string) (float64, bool) {
	if s == "" || !isDigit(s[0]) {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digitRun returns the leading run of ASCII digits.
func digitRun(s string) string {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}

	return s[:i]
}

// leadingNumber returns the leading digit run, allowing one decimal point.
// The run must start with a digit; a lone "." is not a number.
func leadingNumber(s string) string {
	if s == "" || !isDigit(s[0]) {
		return ""
	}

	i, dot := 0, false
	for i < len(s) {
		c := s[i]
		if isDigit(c) {
			i++
			continue
		}
		if c == '.' && !dot {
			dot = true
			i++
			continue
		}
		break
	}

	return s[:i]
}

// trailingNumber returns the trailing digit run, allowing one decimal
// point, provided the run starts with a digit.
func trailingNumber(s string) string {
	i, dot := len(s), false
	for i > 0 {
		c := s[i-1]
		if isDigit(c) {
			i--
			continue
		}
		if c == '.' && !dot {
			dot = true
			i--
			continue
		}
		break
	}

	run := s[i:]
	if run == "" || !isDigit(run[0]) {
		return ""
	}

	return run
}

// numberRangeRun returns the leading run of digits, dots and dashes used
// for range detection.
func numberRangeRun(s string) string {
	i := 0
	for i < len(s) && (isDigit(s[i]) || s[i] == '.' || s[i] == '-') {
		i++
	}

	return s[:i]
}
