package validators

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	numberToken = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

	doubleQuoted      = regexp.MustCompile(`"([^"\n]+)"`)
	curlyDoubleQuoted = regexp.MustCompile(`“([^”\n]+)”`)
	singleQuoted      = regexp.MustCompile(`(?:^|[\s(\[])'([^'\n]+)'(?:[\s.,;:!?)\]]|$)`)
	curlySingleQuoted = regexp.MustCompile(`‘([^’\n]+)’`)
)

const (
	minDoubleQuoteLen = 5
	minSingleQuoteLen = 10
)

var quoteReplacer = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`)

// fold lowercases and straightens typographic quotes for phrase matching.
func fold(s string) string {
	return strings.ToLower(quoteReplacer.Replace(s))
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(fold(haystack), fold(needle))
}

func countFold(haystack, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(fold(haystack), fold(needle))
}

// normalize lowercases, drops punctuation and collapses whitespace so that
// quoted fragments can be compared against raw answers.
func normalize(s string) string {
	s = fold(s)
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			space = false
		case r == '\'':
			// apostrophes vanish so "don't" matches "dont"
		default:
			if !space {
				b.WriteByte(' ')
				space = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// QuotedSpans returns every quoted span long enough to count as the user's
// own words. Short single-quoted runs are ignored so contractions don't match.
func QuotedSpans(text string) []string {
	var spans []string
	collect := func(re *regexp.Regexp, minLen int) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			span := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(span) >= minLen {
				spans = append(spans, span)
			}
		}
	}
	collect(doubleQuoted, minDoubleQuoteLen)
	collect(curlyDoubleQuoted, minDoubleQuoteLen)
	collect(singleQuoted, minSingleQuoteLen)
	collect(curlySingleQuoted, minSingleQuoteLen)
	return spans
}

// parseNumber reads "1,500", "£48000" or "20.5" style values.
func parseNumber(s string) (float64, bool) {
	m := numberToken.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseRange reads "10-15" style answers and returns the low and high ends.
func parseRange(s string) (lo, hi float64, ok bool) {
	matches := numberToken.FindAllString(s, 2)
	if len(matches) == 0 {
		return 0, 0, false
	}
	var vals []float64
	for _, m := range matches {
		f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			return 0, 0, false
		}
		vals = append(vals, f)
	}
	lo, hi = vals[0], vals[0]
	if len(vals) == 2 && vals[1] > vals[0] {
		hi = vals[1]
	}
	return lo, hi, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// numbersIn returns the canonical form of every number in text, so "48,000"
// and "48000" compare equal.
func numbersIn(text string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range numberToken.FindAllString(text, -1) {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64); err == nil {
			out[formatNumber(f)] = true
		}
	}
	return out
}

// captures returns the first submatch of every pattern hit, in order.
func captures(res []*regexp.Regexp, text string) []string {
	var out []string
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 {
				out = append(out, m[1])
			}
		}
	}
	return out
}

func countMatches(res []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range res {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}
