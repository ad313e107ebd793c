package batch

import (
	"fmt"
	"io"
	"sort"

	"github.com/thywilljoshua/pdf-outline/internal/detect"
	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

// Status is the outcome for one input file.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// FileResult is one entry of the processing summary.
type FileResult struct {
	File             string         `json:"file"`
	Status           Status         `json:"status"`
	OutputFile       string         `json:"output_file,omitempty"`
	ErrorKind        outline.Kind   `json:"error_kind,omitempty"`
	Error            string         `json:"error,omitempty"`
	Headings         int            `json:"headings"`
	Title            string         `json:"title,omitempty"`
	DocumentType     detect.Name    `json:"document_type,omitempty"`
	ExtractionMethod outline.Method `json:"extraction_method,omitempty"`
	ProcessingTime   float64        `json:"processing_time"`
	Warnings         []string       `json:"warnings,omitempty"`
}

// Summary describes a whole run. Results are appended in processing order.
type Summary struct {
	RunID         string              `json:"run_id"`
	TotalFiles    int                 `json:"total_files"`
	Successful    int                 `json:"successful"`
	Failed        int                 `json:"failed"`
	Empty         int                 `json:"empty"`
	TotalHeadings int                 `json:"total_headings"`
	TotalTime     float64             `json:"total_time"`
	DocumentTypes map[detect.Name]int `json:"document_types"`
	Results       []FileResult        `json:"results"`
}

func newSummary(runID string) *Summary {
	return &Summary{RunID: runID, DocumentTypes: map[detect.Name]int{}, Results: []FileResult{}}
}

func (s *Summary) add(r FileResult) {
	s.Results = append(s.Results, r)
	s.TotalFiles++
	switch r.Status {
	case StatusFailed:
		s.Failed++
		return
	case StatusEmpty:
		s.Empty++
	}
	s.Successful++
	s.TotalHeadings += r.Headings
	if r.DocumentType != "" {
		s.DocumentTypes[r.DocumentType]++
	}
}

// Print writes a short human-readable report.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Processed %d files: %d successful (%d empty), %d failed\n",
		s.TotalFiles, s.Successful, s.Empty, s.Failed)
	fmt.Fprintf(w, "Total headings: %d\n", s.TotalHeadings)
	avg := 0.0
	if s.TotalFiles > 0 {
		avg = s.TotalTime / float64(s.TotalFiles)
	}
	fmt.Fprintf(w, "Total time: %.2fs (%.2fs per file)\n", s.TotalTime, avg)
	if len(s.DocumentTypes) == 0 {
		return
	}
	names := make([]string, 0, len(s.DocumentTypes))
	for n := range s.DocumentTypes {
		names = append(names, string(n))
	}
	sort.Strings(names)
	fmt.Fprint(w, "Document types:")
	for _, n := range names {
		fmt.Fprintf(w, " %s=%d", n, s.DocumentTypes[detect.Name(n)])
	}
	fmt.Fprintln(w)
}
