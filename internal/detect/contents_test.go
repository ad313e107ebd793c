package detect

import (
	"testing"

	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

func TestIsContentsLine(t *testing.T) {
	for _, s := range []string{
		"1.2 Scope ........ 12",
		"Introduction . . . . . 3",
		"3.1 Data Sources 14",
		"IV Findings 22",
		"Appendix B Glossary 40",
	} {
		if !IsContentsLine(s) {
			t.Errorf("expected %q to look like a contents entry", s)
		}
	}
	for _, s := range []string{"Introduction", "2.1 Scope", "Chapter 3 Methods"} {
		if IsContentsLine(s) {
			t.Errorf("%q is a heading, not a contents entry", s)
		}
	}
}

func TestDetectPage_SkipsPrintedContents(t *testing.T) {
	contents := typography.Page{
		Number: 2, Width: 612, Height: 792,
		Lines: []typography.Line{
			line("Table of Contents", 20, true, 200, 412, 720),
			line("1 Introduction 3", 11, true, 72, 540, 680),
			line("2 Methods 5", 11, true, 72, 540, 660),
			line("2.1 Data Sources 6", 11, true, 72, 540, 640),
		},
	}
	if !IsContentsPage(contents) {
		t.Fatal("page not recognised as a contents page")
	}
	got := New(DefaultProfiles()[Formal]).DetectPage(contents, 11)
	for _, c := range got {
		if c.Text != "Table of Contents" {
			t.Errorf("contents entry %q leaked into candidates", c.Text)
		}
	}

	body := typography.Page{
		Number: 3, Width: 612, Height: 792,
		Lines: []typography.Line{line("1 Introduction", 18, true, 72, 220, 720)},
	}
	if got := New(DefaultProfiles()[Formal]).DetectPage(body, 11); len(got) != 1 || got[0].Text != "1 Introduction" {
		t.Fatalf("real heading lost: %+v", got)
	}
}
