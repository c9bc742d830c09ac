package ir

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrVerification    = errors.New("verification failed")
	ErrUnknownType     = errors.New("unknown type")
	ErrUnknownDialect  = errors.New("unknown dialect")
	ErrExpectedKeyword = errors.New("expected keyword")
)

// Diagnostic is a recoverable error tied to a source location.
type Diagnostic struct {
	Loc     Location
	Op      string // Operation name, empty for plain errors
	Message string
}

func newDiagnostic(loc Location, op, format string, args ...any) *Diagnostic {
	return &Diagnostic{Loc: loc, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Op != "" {
		return fmt.Sprintf("%s: error: '%s' op %s", d.Loc, d.Op, d.Message)
	}
	return fmt.Sprintf("%s: error: %s", d.Loc, d.Message)
}

// Diagnostics collects diagnostics so that one pass can report many of them.
type Diagnostics []*Diagnostic

// Error implements the error interface.
func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Is makes errors.Is(ds, ErrVerification) true.
func (ds Diagnostics) Is(target error) bool {
	return target == ErrVerification
}

// Err returns ds as an error, or nil when empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// AsDiagnostic converts err into a diagnostic located at op.
func AsDiagnostic(op *Operation, err error) *Diagnostic {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return op.EmitOpError("%v", err)
}
