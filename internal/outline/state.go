package outline

import (
	"fmt"

	"github.com/thywilljoshua/pdf-outline/internal/detect"
)

// State is a step of a document's extraction.
type State int

const (
	Init State = iota
	ProfileSelected
	PagesScanned
	TOCResolved
	Done
	Failed
)

var stateNames = [...]string{"INIT", "PROFILE_SELECTED", "PAGES_SCANNED", "TOC_RESOLVED", "DONE", "ERROR"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == Done || s == Failed }

// Document is the record of one extraction. It is inspectable after both
// success and failure.
type Document struct {
	Path    string
	State   State
	History []State
	// Cause is set when State is Failed.
	Cause error
	// Warnings are DecodeWarning errors for pages or the embedded outline.
	Warnings []error

	Profile    detect.Profile
	Scores     map[detect.Name]float64
	BodySize   float64
	Candidates []detect.Candidate
	TOC        []TOCEntry
	TotalPages int
	// Empty is set when no page yielded any text.
	Empty  bool
	Result *Result
}

func newDocument(path string) *Document {
	return &Document{Path: path, State: Init, History: []State{Init}}
}

// transition advances to the next state. Only forward single steps are
// allowed; Failed is reached through fail.
func (d *Document) transition(to State) error {
	if d.State.Terminal() || to != d.State+1 || to == Failed {
		return fmt.Errorf("invalid transition %s -> %s", d.State, to)
	}
	d.State = to
	d.History = append(d.History, to)
	return nil
}

// fail moves the document to Failed, recording err as the cause.
func (d *Document) fail(err error) error {
	if d.State.Terminal() {
		return err
	}
	d.State = Failed
	d.History = append(d.History, Failed)
	d.Cause = err
	return err
}

func (d *Document) warn(err error) { d.Warnings = append(d.Warnings, err) }
