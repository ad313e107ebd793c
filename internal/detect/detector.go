package detect

import (
	"math"
	"sort"
	"strings"

	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

// Candidate is a line accepted as a heading.
type Candidate struct {
	Text       string
	Page       int
	Level      Level
	Confidence float64
	// Order is the line's position on its page.
	Order int
}

// Detector applies a profile's rules to lines.
type Detector struct {
	profile Profile
	rules   []Rule
}

// New returns a detector for profile p using the standard rule order.
func New(p Profile) *Detector {
	return &Detector{profile: p, rules: Rules()}
}

// Profile returns the profile the detector was built with.
func (d *Detector) Profile() Profile { return d.profile }

// Detect classifies one line. The second result is false for non-headings
// and for headings below the profile's minimum confidence.
func (d *Detector) Detect(in Input) (Candidate, bool) {
	p := d.profile
	in.Text = CleanText(in.Line.Text)
	if !d.eligible(in) {
		return Candidate{}, false
	}

	var decided, fallback Level
	var confidence float64
	for _, r := range d.rules {
		sig, ok := r.Eval(in, p)
		if !ok {
			continue
		}
		if r.Veto {
			return Candidate{}, false
		}
		confidence += r.Weight(p.Weights) * sig.Strength
		if sig.Level == None {
			continue
		}
		if decided == None && sig.Strength >= decisiveStrength {
			decided = sig.Level
		}
		if fallback == None {
			fallback = sig.Level
		}
	}
	level := decided
	if level == None {
		level = fallback
	}
	confidence = math.Min(1, confidence)
	if level == None || confidence < p.MinConfidence {
		return Candidate{}, false
	}
	return Candidate{Text: in.Text, Page: in.Line.Page, Level: level, Confidence: confidence}, true
}

func (d *Detector) eligible(in Input) bool {
	p := d.profile
	if len([]rune(in.Text)) < 2 || IsNoise(in.Text) {
		return false
	}
	if IsCaption(in.Text) && !in.Line.Bold {
		return false
	}
	if in.Ratio() < 1-p.Epsilon {
		return false
	}
	if IsContactInfo(in.Text) && !(in.Line.Bold && in.Ratio() >= p.H2Ratio) {
		return false
	}
	return true
}

// DetectPage runs Detect over every line of a page in reading order.
func (d *Detector) DetectPage(page typography.Page, bodySize float64) []Candidate {
	var out []Candidate
	contents := IsContentsPage(page)
	for i, line := range page.Lines {
		in := Input{
			Line:         line,
			BodySize:     bodySize,
			PageWidth:    page.Width,
			PageHeight:   page.Height,
			ContentsPage: contents,
		}
		if i+1 < len(page.Lines) {
			in.Next = &page.Lines[i+1]
		}
		c, ok := d.Detect(in)
		if !ok {
			continue
		}
		c.Page = page.Number
		c.Order = i
		out = append(out, c)
	}
	return out
}

// Select drops repeated heading text (running headers keep their first
// occurrence), applies the profile's heading cap by confidence, and returns
// the survivors in page-then-appearance order.
func Select(cands []Candidate, p Profile) []Candidate {
	seen := map[string]bool{}
	var out []Candidate
	for _, c := range cands {
		key := strings.ToLower(strings.TrimSpace(c.Text))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	if p.MaxHeadings > 0 && len(out) > p.MaxHeadings {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
		out = out[:p.MaxHeadings]
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Order < out[j].Order
	})
	return out
}
