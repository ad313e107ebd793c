package typography

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Line is the set of spans sharing one baseline, in left-to-right order.
type Line struct {
	Spans    []Span
	Text     string
	FontSize float64
	Bold     bool
	Italic   bool
	X0, X1   float64
	Y        float64
	Page     int
	// DominantShare is the fraction of characters set in the line's most
	// used (size, weight) combination.
	DominantShare float64
}

// Width returns the horizontal extent of the line.
func (l Line) Width() float64 { return l.X1 - l.X0 }

// Centered reports whether the line sits in the middle of the page. Lines
// spanning most of the page width never count as centered.
func (l Line) Centered(pageWidth, tolerance float64) bool {
	if pageWidth <= 0 || l.Width() > 0.7*pageWidth {
		return false
	}
	center := (l.X0 + l.X1) / 2
	return math.Abs(center-pageWidth/2)/pageWidth < tolerance
}

// NearTop reports whether the line lies within the top pct of the page.
// PDF user space grows upwards.
func (l Line) NearTop(pageHeight, pct float64) bool {
	if pageHeight <= 0 {
		return false
	}
	return (pageHeight-l.Y)/pageHeight < pct
}

// GroupLines assembles spans into lines ordered top to bottom. Spans whose
// baselines differ by less than 30% of their size share a line; a horizontal
// gap wider than four times the font size starts a new line (column break).
func GroupLines(spans []Span) []Line {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > 0.01 {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]Span
	var rowY, rowSize float64
	for _, s := range sorted {
		tol := math.Max(2, 0.3*math.Max(rowSize, s.FontSize))
		if len(rows) > 0 && math.Abs(s.Y-rowY) <= tol {
			rows[len(rows)-1] = append(rows[len(rows)-1], s)
			continue
		}
		rows = append(rows, []Span{s})
		rowY, rowSize = s.Y, s.FontSize
	}

	var lines []Line
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		start := 0
		for i := 1; i < len(row); i++ {
			size := math.Max(row[i-1].FontSize, row[i].FontSize)
			if row[i].X-row[i-1].Right() > 4*size {
				lines = append(lines, newLine(row[start:i]))
				start = i
			}
		}
		lines = append(lines, newLine(row[start:]))
	}
	return lines
}

type styleKey struct {
	size int
	bold bool
}

func newLine(spans []Span) Line {
	l := Line{Spans: spans, X0: spans[0].X, Y: spans[0].Y, Page: spans[0].Page}
	var b strings.Builder
	var chars, boldChars, italicChars int
	var sizeSum float64
	styles := map[styleKey]int{}
	for i, s := range spans {
		if i > 0 && needsSpace(spans[i-1], s) {
			b.WriteByte(' ')
		}
		b.WriteString(s.Text)
		n := utf8.RuneCountInString(strings.TrimSpace(s.Text))
		chars += n
		sizeSum += s.FontSize * float64(n)
		if s.Bold {
			boldChars += n
		}
		if s.Italic {
			italicChars += n
		}
		styles[styleKey{int(math.Round(s.FontSize * 2)), s.Bold}] += n
		if r := s.Right(); r > l.X1 {
			l.X1 = r
		}
	}
	l.Text = strings.Join(strings.Fields(b.String()), " ")
	if chars == 0 {
		return l
	}
	l.FontSize = sizeSum / float64(chars)
	l.Bold = float64(boldChars)/float64(chars) > 0.5
	l.Italic = float64(italicChars)/float64(chars) > 0.5
	dominant := 0
	for _, n := range styles {
		if n > dominant {
			dominant = n
		}
	}
	l.DominantShare = float64(dominant) / float64(chars)
	return l
}

func needsSpace(prev, next Span) bool {
	if strings.HasSuffix(prev.Text, " ") || strings.HasPrefix(next.Text, " ") {
		return false
	}
	return next.X-prev.Right() > 0.1*math.Min(prev.FontSize, next.FontSize)
}

// BodyFontSize returns the most common font size weighted by character
// count, bucketed to half points. Documents without text default to 12pt.
func BodyFontSize(lines []Line) float64 {
	counts := map[int]int{}
	for _, l := range lines {
		for _, s := range l.Spans {
			counts[int(math.Round(s.FontSize*2))] += utf8.RuneCountInString(strings.TrimSpace(s.Text))
		}
	}
	best, bestN := 0, 0
	for bucket, n := range counts {
		if n > bestN || (n == bestN && bucket < best) {
			best, bestN = bucket, n
		}
	}
	if bestN == 0 {
		return 12
	}
	return float64(best) / 2
}

// FontSizeStdDev returns the character-weighted standard deviation of span
// font sizes.
func FontSizeStdDev(lines []Line) float64 {
	var n, sum, sumSq float64
	for _, l := range lines {
		for _, s := range l.Spans {
			c := float64(utf8.RuneCountInString(strings.TrimSpace(s.Text)))
			n += c
			sum += s.FontSize * c
			sumSq += s.FontSize * s.FontSize * c
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / n
	return math.Sqrt(math.Max(0, sumSq/n-mean*mean))
}
