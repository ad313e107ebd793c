// Package pdftest builds small, uncompressed PDF files for tests.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Text is one text-showing operation. Font names a resource from Doc.Fonts.
type Text struct {
	Font string
	Size float64
	X, Y float64
	S    string
}

// Font maps a resource name to a standard base font.
type Font struct {
	Name     string
	BaseFont string
}

// Page is either a list of texts or a raw content stream.
type Page struct {
	Texts []Text
	Raw   string
}

// Doc describes a document to build.
type Doc struct {
	Pages   []Page
	Fonts   []Font
	Title   string
	Encrypt bool
}

// DefaultFonts are used when Doc.Fonts is empty: F1 regular, F2 bold.
var DefaultFonts = []Font{
	{Name: "F1", BaseFont: "Helvetica"},
	{Name: "F2", BaseFont: "Helvetica-Bold"},
}

// Bytes renders the document with a correct xref table.
func (d Doc) Bytes() []byte {
	fonts := d.Fonts
	if len(fonts) == 0 {
		fonts = DefaultFonts
	}
	var objs []string
	add := func(body string) int {
		objs = append(objs, body)
		return len(objs)
	}

	catalog := add("") // patched below
	pages := add("")

	var fontRefs strings.Builder
	for _, f := range fonts {
		n := add(fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s >>", f.BaseFont))
		fmt.Fprintf(&fontRefs, " /%s %d 0 R", f.Name, n)
	}

	var kids []string
	for _, p := range d.Pages {
		stream := p.Raw
		if stream == "" {
			stream = contentStream(p.Texts)
		}
		content := add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
		page := add(fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font <<%s >> >> >>",
			pages, content, fontRefs.String()))
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
	}
	objs[catalog-1] = fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages)
	objs[pages-1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids))

	info := 0
	if d.Title != "" {
		info = add(fmt.Sprintf("<< /Title (%s) /Producer (pdftest) >>", escape(d.Title)))
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs)+1)
	for i, body := range objs {
		offsets[i+1] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objs); i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root %d 0 R", len(objs)+1, catalog)
	if info != 0 {
		fmt.Fprintf(&b, " /Info %d 0 R", info)
	}
	if d.Encrypt {
		hex := strings.Repeat("00", 32)
		fmt.Fprintf(&b, " /Encrypt << /Filter /Standard /V 1 /R 2 /Length 40 /P -4 /O <%s> /U <%s> >>", hex, hex)
		b.WriteString(" /ID [<0123456789ABCDEF0123456789ABCDEF> <0123456789ABCDEF0123456789ABCDEF>]")
	}
	b.WriteString(" >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xref))
	b.WriteString("\n%%EOF\n")
	return []byte(b.String())
}

func contentStream(texts []Text) string {
	var b strings.Builder
	for _, t := range texts {
		fmt.Fprintf(&b, "BT\n/%s %s Tf\n%s %s Td\n(%s) Tj\nET\n",
			t.Font, ftoa(t.Size), ftoa(t.X), ftoa(t.Y), escape(t.S))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}

// Write stores the document as dir/name and returns the path.
func Write(t testing.TB, dir, name string, d Doc) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, d.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Heading returns a one-page document with a 24pt bold centered heading
// over 11pt body text.
func Heading(heading string, body ...string) Doc {
	texts := []Text{{Font: "F2", Size: 24, X: 306 - 6*float64(len(heading)), Y: 720, S: heading}}
	y := 680.0
	for _, line := range body {
		texts = append(texts, Text{Font: "F1", Size: 11, X: 72, Y: y, S: line})
		y -= 14
	}
	return Doc{Pages: []Page{{Texts: texts}}}
}
