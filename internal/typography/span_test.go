package typography

import (
	"testing"

	rpdf "rsc.io/pdf"
)

func glyphs(font string, size, x, y float64, s string) []rpdf.Text {
	var out []rpdf.Text
	for _, r := range s {
		out = append(out, rpdf.Text{Font: font, FontSize: size, X: x, Y: y, W: size * 0.5, S: string(r)})
		x += size * 0.5
	}
	return out
}

func TestMergeGlyphs_SameStyleBecomesOneSpan(t *testing.T) {
	in := glyphs("Helvetica-Bold", 24, 100, 700, "Introduction")
	spans := MergeGlyphs(in, 1)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	s := spans[0]
	if s.Text != "Introduction" || !s.Bold || s.Italic || s.Page != 1 {
		t.Fatalf("unexpected span %+v", s)
	}
	if s.Width != 12*12 {
		t.Fatalf("expected width 144, got %v", s.Width)
	}
}

func TestMergeGlyphs_StyleChangeSplits(t *testing.T) {
	in := glyphs("Helvetica", 11, 72, 600, "plain ")
	in = append(in, glyphs("Helvetica-Oblique", 11, 72+6*5.5, 600, "slanted")...)
	spans := MergeGlyphs(in, 3)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Italic || !spans[1].Italic {
		t.Fatalf("italic flags wrong: %+v", spans)
	}
}

func TestMergeGlyphs_GapInsertsSpaceOrSplits(t *testing.T) {
	in := glyphs("Helvetica", 10, 0, 500, "ab")
	in = append(in, glyphs("Helvetica", 10, 10+2, 500, "cd")...)   // small gap: same span, space
	in = append(in, glyphs("Helvetica", 10, 200, 500, "far")...) // wide gap: new span
	spans := MergeGlyphs(in, 1)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "ab cd" {
		t.Fatalf("expected %q, got %q", "ab cd", spans[0].Text)
	}
}

func TestMergeGlyphs_ZeroWidthFontsEstimateWidth(t *testing.T) {
	var in []rpdf.Text
	for _, r := range "Title" {
		in = append(in, rpdf.Text{Font: "Helvetica", FontSize: 20, X: 50, Y: 400, S: string(r)})
	}
	spans := MergeGlyphs(in, 1)
	if len(spans) != 1 || spans[0].Text != "Title" {
		t.Fatalf("unexpected spans %+v", spans)
	}
	if spans[0].Width != 50 {
		t.Fatalf("expected estimated width 50, got %v", spans[0].Width)
	}
}

func TestFontMarkers(t *testing.T) {
	cases := []struct {
		font         string
		bold, italic bool
	}{
		{"ABCDEF+Arial-BoldMT", true, false},
		{"Times-Italic", false, true},
		{"Helvetica-BoldOblique", true, true},
		{"NotoSans-SemiBold", true, false},
		{"Helvetica", false, false},
	}
	for _, c := range cases {
		if IsBoldFont(c.font) != c.bold || IsItalicFont(c.font) != c.italic {
			t.Errorf("%s: got bold=%v italic=%v", c.font, IsBoldFont(c.font), IsItalicFont(c.font))
		}
	}
}
