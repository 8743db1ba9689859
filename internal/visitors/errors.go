package visitors

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	// ErrInputShape marks input whose header or identifying columns cannot be used.
	ErrInputShape = eris.New("input shape")
	// ErrParse marks a cell that does not hold a usable value.
	ErrParse = eris.New("parse error")
)

// Pipeline stages reported by StageError.
const (
	StageRead      = "read"
	StageHeader    = "header"
	StageUnpivot   = "unpivot"
	StageNormalize = "normalize"
	StageWrite     = "write"
)

// StageError locates a pipeline failure. Line is the 1-based line of the source
// file (0 when not tied to a row); Column is "country/category" when known.
type StageError struct {
	Stage  string
	Line   int
	Column string
	Err    error
}

func (e *StageError) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage)
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %s", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *StageError) Unwrap() error { return e.Err }

func shapeError(line int, format string, args ...any) error {
	return &StageError{Stage: StageHeader, Line: line, Err: eris.Wrapf(ErrInputShape, format, args...)}
}
