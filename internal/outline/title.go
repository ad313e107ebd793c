package outline

import (
	"strings"

	"github.com/thywilljoshua/pdf-outline/internal/detect"
)

// isPlaceholder reports metadata titles that say nothing about the
// document: empty, the file stem, a file name, or a producer default.
func isPlaceholder(title, stem string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	switch {
	case t == "", t == "untitled", t == strings.ToLower(stem):
		return true
	case strings.HasSuffix(t, ".pdf"), strings.HasPrefix(t, "microsoft word - "):
		return true
	}
	return false
}

// resolveTitle prefers the metadata title, then the most confident H1 on
// page 1, then the file stem.
func resolveTitle(meta, stem string, cands []detect.Candidate) string {
	if !isPlaceholder(meta, stem) {
		return strings.TrimSpace(meta)
	}
	var best *detect.Candidate
	for i := range cands {
		c := &cands[i]
		if c.Page != 1 || c.Level != detect.H1 {
			continue
		}
		if best == nil || c.Confidence > best.Confidence {
			best = c
		}
	}
	if best != nil {
		return best.Text
	}
	return stem
}
