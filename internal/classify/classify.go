// Package classify picks a detection profile from a sample of a document's pages.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/thywilljoshua/pdf-outline/internal/detect"
	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

// DefaultSamplePages is how many leading pages are measured.
const DefaultSamplePages = 3

var keywords = map[detect.Name][]string{
	detect.Promotional: {
		"you're invited", "invited", "hope to see you", "party", "celebration",
		"join us", "rsvp", "please visit", "event", "don't miss", "save the date",
		"come join", "free admission", "tickets",
	},
	detect.Academic: {
		"abstract", "thesis", "dissertation", "research", "hypothesis",
		"methodology", "results", "discussion", "conclusion", "bibliography",
		"literature review", "et al",
	},
	detect.Report: {
		"executive summary", "annual report", "fiscal", "quarter", "stakeholders",
		"recommendations", "findings", "budget", "background", "table of contents",
	},
	detect.Technical: {
		"specification", "api", "configuration", "installation", "requirements",
		"architecture", "protocol", "implementation", "interface", "version",
	},
}

var (
	keywordRes = compileKeywords(keywords)

	phoneRe      = regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}|\d{3}-\d{3}-\d{4}`)
	urlRe        = regexp.MustCompile(`(?i)www\.|https?://`)
	addressRe    = regexp.MustCompile(`(?i)\b\d+\s+(?:[a-z]+\s+){1,3}(?:street|st|avenue|ave|road|rd|drive|dr|lane|ln|parkway|blvd)\b`)
	numberedRe   = regexp.MustCompile(`^\d{1,2}(?:\.\d{1,2})+\.?\s+\S`)
	referencesRe = regexp.MustCompile(`(?i)^(?:\d{1,2}\.?\s+)?(?:references|bibliography|works cited)$`)
)

func compileKeywords(in map[detect.Name][]string) map[detect.Name][]*regexp.Regexp {
	out := make(map[detect.Name][]*regexp.Regexp, len(in))
	for name, words := range in {
		for _, w := range words {
			out[name] = append(out[name], regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
		}
	}
	return out
}

// Signals are the aggregate measurements taken over the sampled pages.
type Signals struct {
	// Keywords counts distinct genre indicators found in the sample text.
	Keywords map[detect.Name]int
	// Contact counts distinct kinds of contact detail (phone, link, address).
	Contact int
	// Numbered counts lines opening with multi-level section numbers.
	Numbered int
	// References is set when a References or Bibliography heading appears.
	References bool
	// SizeStdDev is the character-weighted font size spread.
	SizeStdDev float64
	BodySize   float64
}

// Measure computes signals over pages.
func Measure(pages []typography.Page) Signals {
	var lines []typography.Line
	var text strings.Builder
	s := Signals{Keywords: map[detect.Name]int{}}
	for _, p := range pages {
		for _, l := range p.Lines {
			lines = append(lines, l)
			t := detect.CleanText(l.Text)
			text.WriteString(strings.ToLower(t))
			text.WriteByte('\n')
			if numberedRe.MatchString(t) {
				s.Numbered++
			}
			if referencesRe.MatchString(t) {
				s.References = true
			}
		}
	}
	sample := text.String()
	for name, res := range keywordRes {
		for _, re := range res {
			if re.MatchString(sample) {
				s.Keywords[name]++
			}
		}
	}
	for _, re := range []*regexp.Regexp{phoneRe, urlRe, addressRe} {
		if re.MatchString(sample) {
			s.Contact++
		}
	}
	s.SizeStdDev = typography.FontSizeStdDev(lines)
	s.BodySize = typography.BodyFontSize(lines)
	return s
}

func ratio(n int, full float64) float64 { return math.Min(1, float64(n)/full) }

// Scores rates how well each genre fits the signals, in [0,1].
func Scores(s Signals) map[detect.Name]float64 {
	promo := math.Max(ratio(s.Keywords[detect.Promotional], 3), ratio(s.Contact, 2))
	if s.SizeStdDev > 4 && promo > 0 {
		promo += 0.2
	}
	academic := ratio(s.Keywords[detect.Academic], 4)
	if s.References {
		academic += 0.4
	}
	technical := 0.6*ratio(s.Numbered, 6) + 0.4*ratio(s.Keywords[detect.Technical], 4)
	if s.Numbered > 0 && s.SizeStdDev < 2 {
		technical += 0.1
	}
	return map[detect.Name]float64{
		detect.Promotional: math.Min(1, promo),
		detect.Academic:    math.Min(1, academic),
		detect.Technical:   math.Min(1, technical),
		detect.Report:      ratio(s.Keywords[detect.Report], 3),
	}
}

// Choose returns the highest scoring profile that reaches its own
// selection threshold. Ties go to the earlier name in detect.Names; when
// nothing qualifies the result is Formal.
func Choose(scores map[detect.Name]float64, profiles detect.Profiles) detect.Name {
	best, bestScore := detect.Formal, -1.0
	for _, name := range detect.Names {
		if name == detect.Formal {
			continue
		}
		p, ok := profiles[name]
		if !ok {
			continue
		}
		sc := scores[name]
		if sc <= 0 || sc < p.SelectConfidence {
			continue
		}
		if sc > bestScore {
			best, bestScore = name, sc
		}
	}
	return best
}

// Result is the classifier's decision.
type Result struct {
	Profile  detect.Profile
	Scores   map[detect.Name]float64
	Signals  Signals
	BodySize float64
}

// Classifier selects profiles from a fixed table.
type Classifier struct {
	Profiles    detect.Profiles
	SamplePages int
}

// New returns a classifier over profiles sampling the default page count.
func New(profiles detect.Profiles) *Classifier {
	return &Classifier{Profiles: profiles, SamplePages: DefaultSamplePages}
}

// Classify measures the first SamplePages of pages and selects a profile.
// The same sample always yields the same result.
func (c *Classifier) Classify(pages []typography.Page) Result {
	n := c.SamplePages
	if n <= 0 {
		n = DefaultSamplePages
	}
	if len(pages) > n {
		pages = pages[:n]
	}
	s := Measure(pages)
	scores := Scores(s)
	return Result{
		Profile:  c.Profiles.Get(Choose(scores, c.Profiles)),
		Scores:   scores,
		Signals:  s,
		BodySize: s.BodySize,
	}
}
