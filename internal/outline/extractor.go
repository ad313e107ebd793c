package outline

import (
	"context"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/thywilljoshua/pdf-outline/internal/classify"
	"github.com/thywilljoshua/pdf-outline/internal/detect"
	"github.com/thywilljoshua/pdf-outline/internal/typography"
)

// Default plausibility band for adopting an embedded outline.
const (
	DefaultMinTOCRatio = 0.5
	DefaultMaxTOCRatio = 2.0
)

// Config holds extractor settings. The zero value is usable.
type Config struct {
	Profiles    detect.Profiles
	SamplePages int
	// TOC reads the embedded outline; nil disables it.
	TOC         TOCReader
	MinTOCRatio float64
	MaxTOCRatio float64
	Logger      *slog.Logger
}

func (c *Config) defaults() {
	if c.Profiles == nil {
		c.Profiles = detect.DefaultProfiles()
	}
	if c.SamplePages <= 0 {
		c.SamplePages = classify.DefaultSamplePages
	}
	if c.MinTOCRatio <= 0 {
		c.MinTOCRatio = DefaultMinTOCRatio
	}
	if c.MaxTOCRatio <= 0 {
		c.MaxTOCRatio = DefaultMaxTOCRatio
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Extractor runs the per-document pipeline. It keeps no state between
// documents and may be reused.
type Extractor struct {
	cfg        Config
	classifier *classify.Classifier
}

// New returns an Extractor for cfg.
func New(cfg Config) *Extractor {
	cfg.defaults()
	c := classify.New(cfg.Profiles)
	c.SamplePages = cfg.SamplePages
	return &Extractor{cfg: cfg, classifier: c}
}

// Extract processes the PDF at path. The returned Document is never nil;
// on failure it is in state Failed and the error is also its Cause.
func (e *Extractor) Extract(ctx context.Context, path string) (*Document, error) {
	start := time.Now()
	doc := newDocument(path)
	log := e.cfg.Logger.With("file", filepath.Base(path))

	td, err := typography.Open(path)
	if err != nil {
		return doc, doc.fail(&Error{Kind: UnreadableDocument, Path: path, Cause: err})
	}
	defer td.Close()

	doc.TotalPages = td.NumPage()
	decoded := 0
	load := func(n int) typography.Page {
		p, err := td.Page(n)
		if err != nil {
			w := &Error{Kind: DecodeWarning, Path: path, Page: n, Cause: err}
			log.Warn("decode warning", "page", n, "error", err)
			doc.warn(w)
			return typography.Page{Number: n}
		}
		if len(p.Lines) > 0 {
			decoded++
		}
		return p
	}

	sampleN := min(e.cfg.SamplePages, doc.TotalPages)
	sample := make([]typography.Page, 0, sampleN)
	for n := 1; n <= sampleN; n++ {
		if err := ctx.Err(); err != nil {
			return doc, doc.fail(err)
		}
		sample = append(sample, load(n))
	}
	cls := e.classifier.Classify(sample)
	doc.Profile, doc.Scores, doc.BodySize = cls.Profile, cls.Scores, cls.BodySize
	if err := doc.transition(ProfileSelected); err != nil {
		return doc, doc.fail(err)
	}
	log.Debug("profile selected", "profile", doc.Profile.Name, "body_size", doc.BodySize, "scores", doc.Scores)

	det := detect.New(doc.Profile)
	var all []detect.Candidate
	for n := 1; n <= doc.TotalPages; n++ {
		if err := ctx.Err(); err != nil {
			return doc, doc.fail(err)
		}
		var p typography.Page
		if n <= len(sample) {
			p = sample[n-1]
		} else {
			p = load(n)
		}
		all = append(all, det.DetectPage(p, doc.BodySize)...)
	}
	doc.Empty = decoded == 0
	doc.Candidates = detect.Select(all, doc.Profile)
	if err := doc.transition(PagesScanned); err != nil {
		return doc, doc.fail(err)
	}

	entries := candidateEntries(doc.Candidates)
	method := MethodHeuristic
	if e.cfg.TOC != nil && !doc.Empty {
		toc, err := e.cfg.TOC.ReadTOC(ctx, path)
		switch {
		case ctx.Err() != nil:
			return doc, doc.fail(ctx.Err())
		case err != nil:
			log.Debug("embedded outline unreadable", "error", err)
			doc.warn(&Error{Kind: DecodeWarning, Path: path, Cause: err})
		}
		doc.TOC = toc
		tocEntries := tocOutline(toc, doc.TotalPages)
		if plausible(len(tocEntries), len(entries), e.cfg.MinTOCRatio, e.cfg.MaxTOCRatio) {
			entries, method = tocEntries, MethodTOC
		} else if len(tocEntries) > 0 {
			log.Debug("embedded outline rejected", "toc", len(tocEntries), "heuristic", len(entries))
		}
	}
	if err := doc.transition(TOCResolved); err != nil {
		return doc, doc.fail(err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc.Result = &Result{
		Title:   resolveTitle(td.Title(), stem, all),
		Outline: entries,
		Metadata: Metadata{
			ExtractionMethod: method,
			DocumentType:     doc.Profile.Name,
			ProcessingTime:   math.Round(time.Since(start).Seconds()*1000) / 1000,
			TotalPages:       doc.TotalPages,
			TotalHeadings:    len(entries),
		},
	}
	if err := doc.transition(Done); err != nil {
		return doc, doc.fail(err)
	}
	return doc, nil
}
