package typography

import (
	"math"
	"strings"
	"unicode/utf8"

	rpdf "rsc.io/pdf"
)

// Span is a run of text on one page sharing a single font.
type Span struct {
	Text     string
	Font     string
	FontSize float64
	Bold     bool
	Italic   bool
	X        float64
	Y        float64
	Width    float64
	Page     int
}

// Right returns the x coordinate of the span's right edge.
func (s Span) Right() float64 { return s.X + s.Width }

var (
	boldMarkers   = []string{"bold", "black", "heavy", "semibold", "demi"}
	italicMarkers = []string{"italic", "oblique"}
)

// IsBoldFont reports whether a base font name denotes a bold face.
func IsBoldFont(font string) bool { return hasMarker(font, boldMarkers) }

// IsItalicFont reports whether a base font name denotes an italic face.
func IsItalicFont(font string) bool { return hasMarker(font, italicMarkers) }

func hasMarker(font string, markers []string) bool {
	f := strings.ToLower(font)
	for _, m := range markers {
		if strings.Contains(f, m) {
			return true
		}
	}
	return false
}

type spanBuilder struct {
	b     strings.Builder
	font  string
	size  float64
	x, y  float64
	right float64
	page  int
	last  rune
}

func (sb *spanBuilder) accepts(g rpdf.Text) bool {
	if g.Font != sb.font || math.Abs(g.FontSize-sb.size) > 0.01 {
		return false
	}
	if math.Abs(g.Y-sb.y) > 0.2*sb.size {
		return false
	}
	gap := g.X - sb.right
	return gap >= -sb.size && gap <= 0.3*sb.size
}

func (sb *spanBuilder) add(g rpdf.Text) {
	gap := g.X - sb.right
	if gap > 0.1*sb.size && sb.last != ' ' && !strings.HasPrefix(g.S, " ") {
		sb.b.WriteByte(' ')
	}
	sb.b.WriteString(g.S)
	if r, _ := utf8.DecodeLastRuneInString(g.S); r != utf8.RuneError {
		sb.last = r
	}
	if right := g.X + g.W; right > sb.right {
		sb.right = right
	}
}

func (sb *spanBuilder) span() Span {
	text := sb.b.String()
	width := sb.right - sb.x
	if width <= 0.01 {
		// Fonts without /Widths report zero advance for every glyph.
		width = 0.5 * sb.size * float64(utf8.RuneCountInString(strings.TrimSpace(text)))
	}
	return Span{
		Text:     text,
		Font:     sb.font,
		FontSize: sb.size,
		Bold:     IsBoldFont(sb.font),
		Italic:   IsItalicFont(sb.font),
		X:        sb.x,
		Y:        sb.y,
		Width:    width,
		Page:     sb.page,
	}
}

// MergeGlyphs folds the per-glyph output of the decoder into spans. Adjacent
// glyphs on the same baseline with identical font attributes become one span.
func MergeGlyphs(glyphs []rpdf.Text, page int) []Span {
	var spans []Span
	var cur *spanBuilder
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.b.String()) != "" {
			spans = append(spans, cur.span())
		}
		cur = nil
	}
	for _, g := range glyphs {
		if g.S == "" || g.FontSize <= 0 {
			continue
		}
		if cur != nil && cur.accepts(g) {
			cur.add(g)
			continue
		}
		flush()
		if strings.TrimSpace(g.S) == "" {
			continue
		}
		cur = &spanBuilder{font: g.Font, size: g.FontSize, x: g.X, y: g.Y, right: g.X + g.W, page: page}
		cur.b.WriteString(g.S)
		cur.last, _ = utf8.DecodeLastRuneInString(g.S)
	}
	flush()
	return spans
}
