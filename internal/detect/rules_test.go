package detect

import (
	"testing"

	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

func input(text string, size float64, bold bool, x0, x1, y float64) Input {
	return Input{
		Line: typography.Line{
			Text: text, FontSize: size, Bold: bold,
			X0: x0, X1: x1, Y: y, Page: 1, DominantShare: 1,
		},
		Text:       CleanText(text),
		BodySize:   11,
		PageWidth:  612,
		PageHeight: 792,
	}
}

func TestNumberingRule_DepthToLevel(t *testing.T) {
	p := DefaultProfiles()[Formal]
	cases := []struct {
		text string
		want Level
	}{
		{"1. Introduction", H1},
		{"2.1 Scope", H2},
		{"3.2.1 Data Sources", H3},
		{"4.1.2.7 Deep Detail", H3},
		{"Chapter 3 Methods", H1},
		{"Section 2 Overview", H2},
		{"Appendix B Glossary", H1},
		{"IV. Findings", H1},
	}
	for _, c := range cases {
		sig, ok := NumberingRule.Eval(input(c.text, 11, true, 72, 200, 500), p)
		if !ok {
			t.Errorf("%q: expected numbering match", c.text)
			continue
		}
		if sig.Level != c.want {
			t.Errorf("%q: level %v, want %v", c.text, sig.Level, c.want)
		}
		if sig.Strength < decisiveStrength {
			t.Errorf("%q: bold numbered heading should be decisive, strength %v", c.text, sig.Strength)
		}
	}
	if _, ok := NumberingRule.Eval(input("2024 Annual Results", 11, true, 72, 200, 500), p); ok {
		t.Error("a year must not read as section numbering")
	}
}

func TestFontSizeRule_Thresholds(t *testing.T) {
	p := DefaultProfiles()[Formal]
	cases := []struct {
		size     float64
		want     Level
		decisive bool
	}{
		{24, H1, true},
		{15.5, H2, true},
		{17.8, H1, false}, // just above the H1 threshold
		{14.2, H3, false}, // just below the H2 threshold
	}
	for _, c := range cases {
		sig, ok := FontSizeRule.Eval(input("Heading", c.size, false, 72, 200, 500), p)
		if !ok || sig.Level != c.want || (sig.Strength >= decisiveStrength) != c.decisive {
			t.Errorf("size %v: got %+v ok=%v", c.size, sig, ok)
		}
	}
	if _, ok := FontSizeRule.Eval(input("body", 11, false, 72, 200, 500), p); ok {
		t.Error("body size must not match")
	}
}

func TestEmphasisRule_TieBreakPromotes(t *testing.T) {
	p := DefaultProfiles()[Formal]
	// ratio 1.55 sits in the band below H1; bold raises H2 to H1.
	sig, ok := EmphasisRule.Eval(input("Overview", 17, true, 72, 200, 500), p)
	if !ok || sig.Level != H1 {
		t.Fatalf("expected promotion to H1, got %+v ok=%v", sig, ok)
	}
	// Body sized bold heading-case text becomes an H3 candidate.
	sig, ok = EmphasisRule.Eval(input("Key Findings", 11, true, 72, 150, 500), p)
	if !ok || sig.Level != H3 {
		t.Fatalf("expected H3 for bold body-sized heading, got %+v", sig)
	}
	// Case-sensitive profiles refuse sentence-case body text.
	sig, _ = EmphasisRule.Eval(input("a bold remark", 11, true, 72, 150, 500), p)
	if sig.Level != None {
		t.Fatalf("sentence case must not be promoted in formal profile, got %v", sig.Level)
	}
	// Outside the band emphasis only adds strength.
	sig, _ = EmphasisRule.Eval(input("Introduction", 24, true, 234, 378, 700), p)
	if sig.Level != None || sig.Strength == 0 {
		t.Fatalf("unexpected signal for large text %+v", sig)
	}
}

func TestParagraphRule_Vetoes(t *testing.T) {
	p := DefaultProfiles()[Formal]
	long := input("This sentence is long enough to be ordinary running paragraph text.", 16, true, 72, 540, 500)
	if _, veto := ParagraphRule.Eval(long, p); !veto {
		t.Error("sentence with terminal period should be vetoed")
	}
	mixed := input("Regular words with one bold phrase inside", 16, false, 72, 300, 500)
	mixed.Line.DominantShare = 0.55
	if _, veto := ParagraphRule.Eval(mixed, p); !veto {
		t.Error("mixed-style line should be vetoed")
	}
	wrapped := input("A Wide Bold Heading That Wraps Onto", 16, true, 72, 420, 500)
	wrapped.Next = &typography.Line{Text: "The Next Line", FontSize: 16, Bold: true, Y: 482, X0: 72, X1: 200}
	if _, veto := ParagraphRule.Eval(wrapped, p); !veto {
		t.Error("wide line continued by a same-style line should be vetoed")
	}
	if _, veto := ParagraphRule.Eval(input("Introduction", 24, true, 234, 378, 700), p); veto {
		t.Error("short heading must not be vetoed")
	}
}

func TestPositionRule(t *testing.T) {
	p := DefaultProfiles()[Formal]
	if _, ok := PositionRule.Eval(input("Top", 12, false, 72, 100, 760), p); !ok {
		t.Error("expected match near top")
	}
	if _, ok := PositionRule.Eval(input("Middle", 12, false, 72, 100, 400), p); ok {
		t.Error("unexpected match mid page")
	}
}

func TestLevelForDepth(t *testing.T) {
	want := map[int]Level{0: None, 1: H1, 2: H2, 3: H3, 7: H3}
	for d, l := range want {
		if got := LevelForDepth(d); got != l {
			t.Errorf("depth %d: got %v want %v", d, got, l)
		}
	}
}
