package detect

import (
	"regexp"
	"strings"

	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

// Printed table-of-contents entries: numeric, roman, alphabetic and
// Appendix-prefixed numbers followed by a title and a page number.
var (
	contentsNumRe      = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s+(.+?)\s+(\d+)\s*$`)
	contentsRomanRe    = regexp.MustCompile(`^\s*([IVXLCDM]+)(?:\.([0-9]+))?\.?\s+(.+?)\s+(\d+)\s*$`)
	contentsAlphaRe    = regexp.MustCompile(`^\s*([A-Z](?:\.[0-9]+)*)\.?\s+(.+?)\s+(\d+)\s*$`)
	contentsAppendixRe = regexp.MustCompile(`^\s*(?:Appendix|APPENDIX)\s+([A-Z](?:\.[0-9]+)*)\s+(.+?)\s+(\d+)\s*$`)
	contentsTitleRe    = regexp.MustCompile(`(?i)^(?:table of\s+)?contents$`)
	dotLeaderRe        = regexp.MustCompile(`(?:\.\s?){4,}\s*\d+\s*$`)
)

// minContentsLines is how many entry-shaped lines make a page a contents page.
const minContentsLines = 3

// IsContentsLine reports text shaped like a printed contents entry.
func IsContentsLine(s string) bool {
	if dotLeaderRe.MatchString(s) {
		return true
	}
	s = normalizeDotLeaders(strings.ReplaceAll(s, ".....", " "))
	return contentsAppendixRe.MatchString(s) || contentsNumRe.MatchString(s) ||
		contentsAlphaRe.MatchString(s) || contentsRomanRe.MatchString(s)
}

// IsContentsPage reports a page carrying a printed table of contents: a
// "Contents" heading or several entry-shaped lines.
func IsContentsPage(page typography.Page) bool {
	n := 0
	for _, l := range page.Lines {
		t := strings.TrimSpace(l.Text)
		if contentsTitleRe.MatchString(t) {
			return true
		}
		if IsContentsLine(t) {
			n++
		}
	}
	return n >= minContentsLines
}

// ContentsRule vetoes printed contents entries so they never shadow the
// headings they point at. Dot-leader lines are rejected on any page.
var ContentsRule = Rule{
	Name:   "contents",
	Veto:   true,
	Weight: func(Weights) float64 { return 0 },
	Eval: func(in Input, p Profile) (Signal, bool) {
		raw := strings.TrimSpace(in.Line.Text)
		if dotLeaderRe.MatchString(raw) {
			return Signal{}, true
		}
		return Signal{}, in.ContentsPage && IsContentsLine(raw)
	},
}
