// Package outline extracts a title and heading outline from one PDF.
package outline

import "github.com/thywilljoshua/pdf-outline/internal/detect"

// Method records where an outline came from.
type Method string

const (
	MethodHeuristic Method = "heuristic"
	MethodTOC       Method = "toc"
)

// Entry is one heading of the emitted outline.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

type Metadata struct {
	ExtractionMethod Method      `json:"extraction_method"`
	DocumentType     detect.Name `json:"document_type"`
	ProcessingTime   float64     `json:"processing_time"`
	TotalPages       int         `json:"total_pages"`
	TotalHeadings    int         `json:"total_headings"`
}

// Result is the serialised extraction of one document.
type Result struct {
	Title    string   `json:"title"`
	Outline  []Entry  `json:"outline"`
	Metadata Metadata `json:"metadata"`
}

func candidateEntries(cands []detect.Candidate) []Entry {
	out := make([]Entry, 0, len(cands))
	for _, c := range cands {
		out = append(out, Entry{Level: c.Level.String(), Text: c.Text, Page: c.Page})
	}
	return out
}
