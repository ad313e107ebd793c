package detect

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Introduction   ", "Introduction"},
		{"Background ........ 12", "Background"},
		{"Scope . . . 4", "Scope"},
		{"Chapter 3", "Chapter 3"},
		{"Eﬃcient ﬁle layout", "Efficient file layout"},
		{"Results---", "Results"},
		{"•  Key   Findings", "Key Findings"},
	}
	for _, c := range cases {
		if got := CleanText(c.in); got != c.want {
			t.Errorf("CleanText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsNoise(t *testing.T) {
	for _, s := range []string{"12", "Page 3", "page 2 of 9", "www.acme.com", "https://x.y", "[4]", "Copyright 2024 Acme", "© Acme", "a"} {
		if !IsNoise(s) {
			t.Errorf("expected %q to be noise", s)
		}
	}
	for _, s := range []string{"Introduction", "2.1 Scope", "Results and Discussion"} {
		if IsNoise(s) {
			t.Errorf("did not expect %q to be noise", s)
		}
	}
}

func TestCaseHelpers(t *testing.T) {
	if !IsAllCaps("EXECUTIVE SUMMARY") || IsAllCaps("Executive") || IsAllCaps("A1") {
		t.Fatal("IsAllCaps misclassified")
	}
	if !IsTitleCase("Results and Discussion") || IsTitleCase("results and discussion") {
		t.Fatal("IsTitleCase misclassified")
	}
	if !IsHeadingCase("2.1 Related Work") || IsHeadingCase("1. buy more milk") {
		t.Fatal("IsHeadingCase misclassified numbered text")
	}
}

func TestIsContactInfo(t *testing.T) {
	for _, s := range []string{"Call (555) 123-4567", "rsvp@party.org", "3735 Parkway Drive", "visit www.fun.com"} {
		if !IsContactInfo(s) {
			t.Errorf("expected %q to be contact info", s)
		}
	}
	if IsContactInfo("Methodology") {
		t.Error("Methodology is not contact info")
	}
}
