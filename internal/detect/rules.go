package detect

import (
	"math"
	"strings"

	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

// Level is a heading level; None means not a heading.
type Level int

const (
	None Level = iota
	H1
	H2
	H3
)

func (l Level) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return "none"
	}
}

// LevelForDepth maps a numbering or outline depth to a level; anything
// deeper than two is H3.
func LevelForDepth(depth int) Level {
	switch {
	case depth <= 0:
		return None
	case depth == 1:
		return H1
	case depth == 2:
		return H2
	default:
		return H3
	}
}

func (l Level) promote() Level {
	switch l {
	case None:
		return H3
	case H3:
		return H2
	default:
		return H1
	}
}

// Input is one line under consideration with its page context.
type Input struct {
	Line       typography.Line
	Next       *typography.Line
	Text       string
	BodySize   float64
	PageWidth  float64
	PageHeight float64
	// ContentsPage marks a page holding a printed table of contents.
	ContentsPage bool
}

// Ratio is the line's font size relative to the body text size.
func (in Input) Ratio() float64 {
	if in.BodySize <= 0 {
		return 1
	}
	return in.Line.FontSize / in.BodySize
}

// Signal is a rule's verdict: a proposed level (possibly None) and a
// strength in [0,1].
type Signal struct {
	Level    Level
	Strength float64
}

// A signal at or above this strength fixes the level.
const decisiveStrength = 0.5

// Rule is an independent predicate and scorer. A matching Veto rule rejects
// the line outright.
type Rule struct {
	Name   string
	Veto   bool
	Weight func(Weights) float64
	Eval   func(in Input, p Profile) (Signal, bool)
}

// Rules returns the rules in precedence order.
func Rules() []Rule {
	return []Rule{NumberingRule, ContentsRule, ParagraphRule, FontSizeRule, EmphasisRule, PositionRule}
}

// NumberingRule maps explicit numbering ("2.1", "Chapter 3") to a level by depth.
var NumberingRule = Rule{
	Name:   "numbering",
	Weight: func(w Weights) float64 { return w.Numbering },
	Eval: func(in Input, p Profile) (Signal, bool) {
		for _, np := range p.Numbering {
			m := np.Re.FindStringSubmatch(in.Text)
			if m == nil {
				continue
			}
			strength := 0.6
			if in.Line.Bold || in.Ratio() >= p.H3Ratio {
				strength = 0.9
			}
			if WordCount(in.Text) > p.MaxWords {
				strength = 0.3
			}
			return Signal{Level: LevelForDepth(np.Depth(m)), Strength: strength}, true
		}
		return Signal{}, false
	},
}

func sizeLevel(ratio float64, p Profile) Level {
	switch {
	case ratio >= p.H1Ratio:
		return H1
	case ratio >= p.H2Ratio:
		return H2
	case ratio >= p.H3Ratio:
		return H3
	default:
		return None
	}
}

func ambiguous(ratio float64, p Profile) bool {
	for _, t := range []float64{p.H1Ratio, p.H2Ratio, p.H3Ratio} {
		if math.Abs(ratio-t) < p.Epsilon {
			return true
		}
	}
	return false
}

// FontSizeRule compares the line size with the body size. Inside the
// ambiguity band its signal is too weak to fix the level on its own.
var FontSizeRule = Rule{
	Name:   "font-size",
	Weight: func(w Weights) float64 { return w.FontSize },
	Eval: func(in Input, p Profile) (Signal, bool) {
		r := in.Ratio()
		lvl := sizeLevel(r, p)
		if lvl == None {
			return Signal{}, false
		}
		if ambiguous(r, p) {
			return Signal{Level: lvl, Strength: 0.45}, true
		}
		strength := map[Level]float64{H1: 1, H2: 0.85, H3: 0.7}[lvl]
		return Signal{Level: lvl, Strength: strength}, true
	},
}

// EmphasisRule scores bold, centered, heading-case and short all-caps text.
// When the size ratio is ambiguous, or the line is body sized, bold or
// centered text is raised one level above what size alone gives.
var EmphasisRule = Rule{
	Name:   "emphasis",
	Weight: func(w Weights) float64 { return w.Emphasis },
	Eval: func(in Input, p Profile) (Signal, bool) {
		bold := in.Line.Bold
		centered := in.Line.Centered(in.PageWidth, 0.15)
		headingCase := IsHeadingCase(in.Text)
		caps := IsAllCaps(in.Text) && WordCount(in.Text) <= p.MaxWords

		var s float64
		if bold {
			s += 0.6
		}
		if centered {
			s += 0.3
		}
		if headingCase {
			s += 0.3
		}
		if caps {
			s += 0.25
		}
		if s == 0 {
			return Signal{}, false
		}
		s = math.Min(1, s)

		r := in.Ratio()
		base := sizeLevel(r, p)
		bodySized := base == None && r >= 1-p.Epsilon
		if !(bold || centered) || !(ambiguous(r, p) || bodySized) {
			return Signal{Strength: s}, true
		}
		if base == None && p.CaseSensitive && !headingCase {
			return Signal{Strength: s}, true
		}
		return Signal{Level: base.promote(), Strength: s}, true
	},
}

// ParagraphRule vetoes lines that belong to running text: mixed styling,
// sentence punctuation, excessive length or a wrapped continuation below.
var ParagraphRule = Rule{
	Name:   "paragraph",
	Veto:   true,
	Weight: func(Weights) float64 { return 0 },
	Eval: func(in Input, p Profile) (Signal, bool) {
		words := WordCount(in.Text)
		raw := strings.TrimSpace(in.Line.Text)
		switch {
		case words > 2*p.MaxWords:
			return Signal{}, true
		case words > 3 && in.Line.DominantShare > 0 && in.Line.DominantShare < 0.6:
			return Signal{}, true
		case strings.HasSuffix(raw, ",") || strings.HasSuffix(raw, ";"):
			return Signal{}, true
		case words > 4 && strings.HasSuffix(raw, ".") && !strings.HasSuffix(raw, ".."):
			return Signal{}, true
		}
		if n := in.Next; n != nil && in.PageWidth > 0 {
			sameStyle := math.Abs(n.FontSize-in.Line.FontSize) < 0.1 && n.Bold == in.Line.Bold
			gap := in.Line.Y - n.Y
			if sameStyle && gap > 0 && gap <= 1.5*in.Line.FontSize && in.Line.Width() > 0.55*in.PageWidth {
				return Signal{}, true
			}
		}
		return Signal{}, false
	},
}

// PositionRule gives a small boost to text near the top of the page.
var PositionRule = Rule{
	Name:   "position",
	Weight: func(w Weights) float64 { return w.Position },
	Eval: func(in Input, p Profile) (Signal, bool) {
		if in.Ratio() >= 1 && in.Line.NearTop(in.PageHeight, 0.15) {
			return Signal{Strength: 1}, true
		}
		return Signal{}, false
	},
}
