// Package typography turns decoded PDF pages into styled text spans and lines.
package typography

import (
	"errors"
	"fmt"
	"os"
	"strings"

	rpdf "rsc.io/pdf"
)

// ErrEncrypted is returned by Open for documents carrying an /Encrypt dictionary.
var ErrEncrypted = errors.New("document is encrypted")

const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

// Document is an open PDF. The underlying file stays open until Close.
type Document struct {
	f *os.File
	r *rpdf.Reader
}

// Page is the typography of a single page.
type Page struct {
	Number int
	Width  float64
	Height float64
	Spans  []Span
	Lines  []Line
}

// Open opens path and validates that it is a readable, non-encrypted PDF.
func Open(path string) (doc *Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			f.Close()
		}
	}()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := newReader(f, fi.Size())
	if err != nil {
		if errors.Is(err, rpdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %v", ErrEncrypted, err)
		}
		return nil, err
	}
	if r.Trailer().Key("Encrypt").Kind() != rpdf.Null {
		return nil, ErrEncrypted
	}
	return &Document{f: f, r: r}, nil
}

// rsc.io/pdf panics on some malformed xref tables.
func newReader(f *os.File, size int64) (r *rpdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()
	return rpdf.NewReader(f, size)
}

// Close releases the file handle.
func (d *Document) Close() error {
	if d == nil || d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

// NumPage returns the page count declared by the page tree.
func (d *Document) NumPage() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return d.r.NumPage()
}

// Title returns the /Title entry of the document information dictionary.
func (d *Document) Title() (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	return strings.TrimSpace(d.r.Trailer().Key("Info").Key("Title").Text())
}

// Page decodes page n (1-based). A corrupt content stream yields an error
// and an empty page rather than a panic.
func (d *Document) Page(n int) (page Page, err error) {
	page = Page{Number: n, Width: defaultPageWidth, Height: defaultPageHeight}
	defer func() {
		if rec := recover(); rec != nil {
			page = Page{Number: n, Width: page.Width, Height: page.Height}
			err = fmt.Errorf("decode page %d: %v", n, rec)
		}
	}()
	p := d.r.Page(n)
	if p.V.IsNull() {
		return page, fmt.Errorf("decode page %d: missing page object", n)
	}
	page.Width, page.Height = mediaBox(p.V)
	page.Spans = MergeGlyphs(p.Content().Text, n)
	page.Lines = GroupLines(page.Spans)
	return page, nil
}

// mediaBox walks up the page tree since /MediaBox is inheritable.
func mediaBox(v rpdf.Value) (float64, float64) {
	for i := 0; i < 32 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Kind() == rpdf.Array && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}
