package detect

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	noiseRe    = regexp.MustCompile(`(?i)^(?:\d+|page\s+\d+(?:\s+of\s+\d+)?|www\..*|https?://.*|\[.*\]|copyright.*|all rights reserved.*|©.*)$`)
	captionRe  = regexp.MustCompile(`(?i)^(?:figure|fig\.?|table|tbl\.?)\s+\d+`)
	phoneRe    = regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}|\d{3}-\d{3}-\d{4}|\b\d{10}\b`)
	urlRe      = regexp.MustCompile(`(?i)www\.|https?://|\.com\b|\.org\b|\.net\b`)
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	addressRe  = regexp.MustCompile(`(?i)\b\d+\s+(?:[a-z]+\s+){1,3}(?:street|st|avenue|ave|road|rd|drive|dr|lane|ln|way|blvd|boulevard)\b`)
	leaderRe   = regexp.MustCompile(`\s*(?:\.\s*){2,}\d*\s*$`)
	trailingRe = regexp.MustCompile(`[.\-_]+$`)
)

// normalizeDotLeaders flattens bullet and ellipsis leaders to spaces.
func normalizeDotLeaders(s string) string {
	s = strings.ReplaceAll(s, "•", " ")
	s = strings.ReplaceAll(s, "·", " ")
	s = strings.ReplaceAll(s, "…", " ... ")
	s = strings.ReplaceAll(s, " . . . ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// CleanText normalises heading text: compatibility forms (ligatures, full
// width), leaders, trailing page references and punctuation.
func CleanText(s string) string {
	s = norm.NFKC.String(s)
	s = leaderRe.ReplaceAllString(s, "")
	s = normalizeDotLeaders(s)
	s = trailingRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// IsNoise reports text that never forms a heading: page numbers, links,
// copyright notices and bracketed references.
func IsNoise(s string) bool {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 2 {
		return true
	}
	return noiseRe.MatchString(s) || urlRe.MatchString(s) || emailRe.MatchString(s)
}

// IsCaption reports figure and table captions.
func IsCaption(s string) bool { return captionRe.MatchString(s) }

// IsContactInfo reports phone numbers, links, e-mail and street addresses.
func IsContactInfo(s string) bool {
	return phoneRe.MatchString(s) || urlRe.MatchString(s) || emailRe.MatchString(s) || addressRe.MatchString(s)
}

// WordCount counts whitespace separated words.
func WordCount(s string) int { return len(strings.Fields(s)) }

// IsAllCaps reports text with at least three letters, all upper case.
func IsAllCaps(s string) bool {
	upper, letters := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= 3 && upper == letters
}

var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "by": true, "for": true,
	"in": true, "of": true, "on": true, "or": true, "the": true, "to": true, "with": true,
}

// IsTitleCase reports text whose first word and every major word start
// with an upper-case letter.
func IsTitleCase(s string) bool {
	words := strings.Fields(s)
	seen := false
	for i, w := range words {
		r := firstLetter(w)
		if r == 0 {
			continue
		}
		if i > 0 && minorWords[strings.ToLower(w)] {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		seen = true
	}
	return seen
}

func firstLetter(w string) rune {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return r
		}
		if unicode.IsDigit(r) {
			return 0
		}
	}
	return 0
}

// IsHeadingCase accepts upper case and title case text. A leading
// numbering token ("2.1", "IV.") is ignored.
func IsHeadingCase(s string) bool {
	if loc := numberPrefixRe.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	return IsAllCaps(s) || IsTitleCase(s)
}

var numberPrefixRe = regexp.MustCompile(`^(?:\d{1,3}(?:\.\d{1,3})*\.?|[IVXLCDM]+\.)\s+`)
