package outline

import (
	"errors"
	"fmt"
)

// Kind classifies per-document failures.
type Kind string

const (
	// UnreadableDocument: corrupt, encrypted or otherwise unopenable file.
	UnreadableDocument Kind = "UnreadableDocument"
	// EmptyDocument: no page produced any text. Reported as a status.
	EmptyDocument Kind = "EmptyDocument"
	// DecodeWarning: one page (or the embedded outline) could not be decoded.
	DecodeWarning Kind = "DecodeWarning"
)

// Error is a classified extraction error.
type Error struct {
	Kind  Kind
	Path  string
	Page  int
	Cause error
}

func (e *Error) Error() string {
	switch {
	case e.Page > 0:
		return fmt.Sprintf("%s: %s page %d: %v", e.Kind, e.Path, e.Page, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }
