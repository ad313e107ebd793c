package outline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/thywilljoshua/pdf-outline/internal/detect"
)

// TOCEntry is one node of an embedded outline, flattened depth first.
type TOCEntry struct {
	Title string
	Page  int
	Depth int
}

// TOCReader reads a document's embedded table of contents. A document
// without one yields no entries and no error.
type TOCReader interface {
	ReadTOC(ctx context.Context, path string) ([]TOCEntry, error)
}

var disableConfigDir sync.Once

// PdfcpuTOC reads bookmarks with pdfcpu.
type PdfcpuTOC struct{}

// NewPdfcpuTOC returns a bookmark reader. pdfcpu's user configuration
// directory is disabled so runs never write outside the output directory.
func NewPdfcpuTOC() PdfcpuTOC {
	disableConfigDir.Do(api.DisableConfigDir)
	return PdfcpuTOC{}
}

func (PdfcpuTOC) ReadTOC(ctx context.Context, path string) (entries []TOCEntry, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("pdfcpu: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	// A document without outlines yields nil bookmarks and no error.
	bms, err := pdfcpu.Bookmarks(pctx)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu bookmarks: %w", err)
	}
	if len(bms) == 0 {
		return nil, nil
	}
	return flattenBookmarks(bms, 1, nil), nil
}

func flattenBookmarks(bms []pdfcpu.Bookmark, depth int, out []TOCEntry) []TOCEntry {
	for _, b := range bms {
		out = append(out, TOCEntry{Title: b.Title, Page: b.PageFrom, Depth: depth})
		out = flattenBookmarks(b.Kids, depth+1, out)
	}
	return out
}

// tocOutline converts entries to outline entries, dropping those with an
// empty title or a page outside [1,totalPages].
func tocOutline(entries []TOCEntry, totalPages int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		text := detect.CleanText(e.Title)
		if len([]rune(text)) < 2 || e.Page < 1 || e.Page > totalPages {
			continue
		}
		out = append(out, Entry{Level: detect.LevelForDepth(e.Depth).String(), Text: text, Page: e.Page})
	}
	return out
}

// plausible reports whether an embedded outline of tocN entries should
// replace heuristicN heuristic headings.
func plausible(tocN, heuristicN int, minRatio, maxRatio float64) bool {
	if tocN == 0 {
		return false
	}
	if heuristicN == 0 {
		return true
	}
	r := float64(tocN) / float64(heuristicN)
	return r >= minRatio && r <= maxRatio
}
