// Package detect classifies text lines into heading levels.
package detect

import (
	"regexp"
	"strings"
)

// Name identifies a document profile.
type Name string

const (
	Academic    Name = "academic"
	Report      Name = "report"
	Promotional Name = "promotional"
	Technical   Name = "technical"
	Formal      Name = "formal"
)

// Names lists every profile; Formal is the default and comes last.
var Names = []Name{Promotional, Academic, Technical, Report, Formal}

// Weights scale each rule's signal strength into the confidence sum.
type Weights struct {
	Numbering float64 `yaml:"numbering"`
	FontSize  float64 `yaml:"font_size"`
	Emphasis  float64 `yaml:"emphasis"`
	Position  float64 `yaml:"position"`
}

// NumberingPattern maps a heading prefix to an outline depth.
type NumberingPattern struct {
	Name  string
	Re    *regexp.Regexp
	Depth func(m []string) int
}

// Profile is the threshold bundle for one document genre.
type Profile struct {
	Name Name
	// Font size ratios (line size / body size) for each level.
	H1Ratio float64
	H2Ratio float64
	H3Ratio float64
	// Epsilon is the half-width of the ambiguity band around each ratio.
	Epsilon float64
	// MaxWords bounds heading length for numbering and caps signals.
	MaxWords int
	// MinConfidence drops weaker candidates.
	MinConfidence float64
	// MaxHeadings caps the heuristic outline; 0 means unlimited.
	MaxHeadings int
	// CaseSensitive requires heading case before body-sized text may be
	// promoted by emphasis.
	CaseSensitive bool
	// SelectConfidence is the classifier score this profile needs to be chosen.
	SelectConfidence float64
	Numbering        []NumberingPattern
	Weights          Weights
}

// Profiles is the immutable lookup table handed to the classifier and detector.
type Profiles map[Name]Profile

// Get returns the named profile, falling back to Formal.
func (ps Profiles) Get(n Name) Profile {
	if p, ok := ps[n]; ok {
		return p
	}
	if p, ok := ps[Formal]; ok {
		return p
	}
	return DefaultProfiles()[Formal]
}

func dotDepth(number string) int { return strings.Count(strings.Trim(number, "."), ".") + 1 }

var (
	decimalNumbering = NumberingPattern{
		Name:  "decimal",
		Re:    regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3})*)\.?\s+\S`),
		Depth: func(m []string) int { return dotDepth(m[1]) },
	}
	chapterNumbering = NumberingPattern{
		Name:  "chapter",
		Re:    regexp.MustCompile(`(?i)^(?:chapter|ch\.|part)\s+(?:\d+|[ivxlcdm]+)\b`),
		Depth: func([]string) int { return 1 },
	}
	sectionNumbering = NumberingPattern{
		Name:  "section",
		Re:    regexp.MustCompile(`(?i)^(?:section|sec\.)\s+(\d+(?:\.\d+)*)\b`),
		Depth: func(m []string) int { return dotDepth(m[1]) + 1 },
	}
	appendixNumbering = NumberingPattern{
		Name:  "appendix",
		Re:    regexp.MustCompile(`^(?:Appendix|APPENDIX)\s+([A-Z](?:\.[0-9]+)*)\b`),
		Depth: func(m []string) int { return dotDepth(m[1]) },
	}
	romanNumbering = NumberingPattern{
		Name:  "roman",
		Re:    regexp.MustCompile(`^([IVXLCDM]+)\.\s+\S`),
		Depth: func([]string) int { return 1 },
	}
	alphaNumbering = NumberingPattern{
		Name:  "alpha",
		Re:    regexp.MustCompile(`^([A-Z](?:\.\d+)+|[A-Z]\.)\s+\S`),
		Depth: func(m []string) int { return dotDepth(m[1]) },
	}
)

// DefaultProfiles returns the built-in thresholds.
func DefaultProfiles() Profiles {
	standard := Weights{Numbering: 0.5, FontSize: 0.6, Emphasis: 0.5, Position: 0.1}
	return Profiles{
		Formal: {
			Name: Formal, H1Ratio: 1.6, H2Ratio: 1.3, H3Ratio: 1.1, Epsilon: 0.1,
			MaxWords: 12, MinConfidence: 0.4, MaxHeadings: 50, CaseSensitive: true,
			Numbering: []NumberingPattern{decimalNumbering, chapterNumbering, sectionNumbering, appendixNumbering, romanNumbering},
			Weights:   standard,
		},
		Academic: {
			Name: Academic, H1Ratio: 1.5, H2Ratio: 1.25, H3Ratio: 1.08, Epsilon: 0.08,
			MaxWords: 14, MinConfidence: 0.4, MaxHeadings: 50, CaseSensitive: false,
			SelectConfidence: 0.6,
			Numbering:        []NumberingPattern{decimalNumbering, chapterNumbering, sectionNumbering, appendixNumbering, romanNumbering, alphaNumbering},
			Weights:          standard,
		},
		Report: {
			Name: Report, H1Ratio: 1.6, H2Ratio: 1.3, H3Ratio: 1.1, Epsilon: 0.1,
			MaxWords: 12, MinConfidence: 0.4, MaxHeadings: 50, CaseSensitive: true,
			SelectConfidence: 0.6,
			Numbering:        []NumberingPattern{decimalNumbering, chapterNumbering, sectionNumbering, appendixNumbering},
			Weights:          standard,
		},
		Technical: {
			Name: Technical, H1Ratio: 1.5, H2Ratio: 1.25, H3Ratio: 1.08, Epsilon: 0.08,
			MaxWords: 14, MinConfidence: 0.4, MaxHeadings: 50, CaseSensitive: false,
			SelectConfidence: 0.6,
			Numbering:        []NumberingPattern{decimalNumbering, chapterNumbering, sectionNumbering, appendixNumbering, romanNumbering, alphaNumbering},
			Weights:          Weights{Numbering: 0.6, FontSize: 0.5, Emphasis: 0.5, Position: 0.1},
		},
		Promotional: {
			Name: Promotional, H1Ratio: 1.8, H2Ratio: 1.4, H3Ratio: 1.15, Epsilon: 0.1,
			MaxWords: 8, MinConfidence: 0.45, MaxHeadings: 5, CaseSensitive: false,
			SelectConfidence: 0.6,
			Weights:          Weights{Numbering: 0, FontSize: 0.6, Emphasis: 0.6, Position: 0.15},
		},
	}
}
