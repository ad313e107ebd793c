package classify

import (
	"testing"

	"github.com/thywilljoshua/pdf-outline/internal/detect"
	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

func page(n int, size float64, texts ...string) typography.Page {
	p := typography.Page{Number: n, Width: 612, Height: 792}
	y := 720.0
	for _, t := range texts {
		sp := typography.Span{Text: t, FontSize: size, X: 72, Y: y, Page: n}
		p.Lines = append(p.Lines, typography.Line{
			Spans: []typography.Span{sp}, Text: t, FontSize: size,
			X0: 72, X1: 300, Y: y, Page: n, DominantShare: 1,
		})
		y -= 14
	}
	return p
}

func TestClassify_Genres(t *testing.T) {
	cases := []struct {
		name  string
		pages []typography.Page
		want  detect.Name
	}{
		{
			name: "invitation",
			pages: []typography.Page{page(1, 14,
				"You're Invited!", "Join us for a summer party", "RSVP by June 1",
				"Call (555) 123-4567", "www.party.com")},
			want: detect.Promotional,
		},
		{
			name: "paper",
			pages: []typography.Page{page(1, 11,
				"Abstract", "1 Introduction", "This research tests a hypothesis.",
				"Methodology", "Results and discussion", "References")},
			want: detect.Academic,
		},
		{
			name: "manual",
			pages: []typography.Page{page(1, 11,
				"2.1 Installation", "2.2 Configuration", "3.1 API Reference",
				"3.2 Protocol", "3.3 Interface", "4.1 Requirements")},
			want: detect.Technical,
		},
		{
			name:  "plain",
			pages: []typography.Page{page(1, 11, "Hello world", "Nothing to see")},
			want:  detect.Formal,
		},
		{
			name: "empty",
			want: detect.Formal,
		},
	}
	c := New(detect.DefaultProfiles())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.pages)
			if got.Profile.Name != tc.want {
				t.Fatalf("profile = %q, want %q (scores %v)", got.Profile.Name, tc.want, got.Scores)
			}
			again := c.Classify(tc.pages)
			if again.Profile.Name != got.Profile.Name || again.BodySize != got.BodySize {
				t.Fatal("classification is not deterministic")
			}
		})
	}
}

func TestClassify_OnlySamplesLeadingPages(t *testing.T) {
	pages := []typography.Page{
		page(1, 11, "Hello world"),
		page(2, 11, "Plain prose"),
		page(3, 11, "More prose"),
		page(4, 14, "You're Invited!", "Join us for a party", "RSVP today", "www.party.com"),
	}
	c := New(detect.DefaultProfiles())
	if got := c.Classify(pages).Profile.Name; got != detect.Formal {
		t.Fatalf("page 4 leaked into the sample: %q", got)
	}
	c.SamplePages = 4
	if got := c.Classify(pages).Profile.Name; got != detect.Promotional {
		t.Fatalf("with 4 sample pages got %q", got)
	}
}

func TestChoose_TiesAndThresholds(t *testing.T) {
	ps := detect.DefaultProfiles()
	cases := []struct {
		scores map[detect.Name]float64
		want   detect.Name
	}{
		{map[detect.Name]float64{detect.Promotional: 0.8, detect.Academic: 0.8}, detect.Promotional},
		{map[detect.Name]float64{detect.Academic: 0.7, detect.Technical: 0.7, detect.Report: 0.7}, detect.Academic},
		{map[detect.Name]float64{detect.Technical: 0.9, detect.Academic: 0.7}, detect.Technical},
		{map[detect.Name]float64{detect.Report: 0.5}, detect.Formal},
		{nil, detect.Formal},
	}
	for _, c := range cases {
		if got := Choose(c.scores, ps); got != c.want {
			t.Errorf("Choose(%v) = %q, want %q", c.scores, got, c.want)
		}
	}
}

func TestMeasure_BodySizeAndSpread(t *testing.T) {
	pages := []typography.Page{page(1, 11, "body one", "body two", "body three")}
	s := Measure(pages)
	if s.BodySize != 11 {
		t.Fatalf("body size = %v", s.BodySize)
	}
	if s.SizeStdDev != 0 {
		t.Fatalf("uniform sizes should have no spread, got %v", s.SizeStdDev)
	}
	if got := Measure(nil).BodySize; got != 12 {
		t.Fatalf("empty sample body size = %v, want 12", got)
	}
}
