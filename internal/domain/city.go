package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Place is the canonical (city, state) lookup key.
type Place struct {
	City      string
	StateCode string
}

// Normalizer maps raw path input onto the spelling used by the reference datasets.
type Normalizer struct {
	titleCase func(string) string
}

var (
	// StandardNormalizer is used by the jobs lookup.
	StandardNormalizer = Normalizer{titleCase: TitleCase}
	// SmartNormalizer is used by the rental lookup; it keeps interior capitals ("McAllen").
	SmartNormalizer = Normalizer{titleCase: SmartTitleCase}
)

// prefixRule rewrites a city whose name starts with prefix by replacing every
// occurrence of old with repl. Only the first matching rule applies.
type prefixRule struct {
	prefix string
	old    string
	repl   string
}

var prefixRules = []prefixRule{
	{prefix: "Saint", old: "Saint", repl: "St."},
	{prefix: "St ", old: "St", repl: "St."},
	{prefix: "Ft ", old: "Ft", repl: "Fort"},
	{prefix: "Ft.", old: "Ft.", repl: "Fort"},
}

// Normalize title-cases the city, upper-cases the state code and applies the
// first matching prefix rule. Whitespace and punctuation are left alone.
func (n Normalizer) Normalize(rawCity, rawStateCode string) Place {
	city := n.titleCase(rawCity)
	return Place{
		City:      rewritePrefix(city),
		StateCode: strings.ToUpper(rawStateCode),
	}
}

// rewritePrefix replacement is a literal substring replace over the whole name,
// so "St Stephens" becomes "St. St.ephens".
func rewritePrefix(city string) string {
	for _, rule := range prefixRules {
		if strings.HasPrefix(city, rule.prefix) {
			return strings.ReplaceAll(city, rule.old, rule.repl)
		}
	}
	return city
}

// TitleCase raises every cased letter that follows an uncased rune and lowers
// the rest, so word breaks fall on any non-letter: "o'fallon" becomes
// "O'Fallon" and "ft.worth" becomes "Ft.Worth".
func TitleCase(s string) string {
	return titleRunes(s, true)
}

// SmartTitleCase title-cases each space separated word. A word already mixing
// case is not left as-is: its word-initial letters are still raised, but
// nothing is lowered, so "mcAllen" becomes "McAllen" to match the dataset
// spelling.
func SmartTitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = titleRunes(w, !isMixedCase(w))
	}
	return strings.Join(words, " ")
}

// titleRunes maps rune by rune; lowerRest=false leaves non-initial letters alone.
func titleRunes(s string, lowerRest bool) string {
	// Casers keep state; one set per call.
	title := cases.Title(language.AmericanEnglish)
	lower := cases.Lower(language.AmericanEnglish)

	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		ch := string(r)
		switch {
		case !prevCased:
			b.WriteString(title.String(ch))
		case lowerRest:
			b.WriteString(lower.String(ch))
		default:
			b.WriteString(ch)
		}
		prevCased = isCased(r)
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// isMixedCase reports whether a lower-case letter follows an upper-case one.
func isMixedCase(w string) bool {
	seenUpper := false
	for _, r := range w {
		switch {
		case unicode.IsUpper(r):
			seenUpper = true
		case unicode.IsLower(r) && seenUpper:
			return true
		}
	}
	return false
}
