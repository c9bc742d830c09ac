package ir

import "fmt"

// Location is a source position attached to operations and diagnostics.
type Location struct {
	File string
	Line int
	Col  int
}

// UnknownLoc is used when no source position is available.
var UnknownLoc = Location{}

// Loc creates a file location.
func Loc(file string, line, col int) Location {
	return Location{File: file, Line: line, Col: col}
}

// IsUnknown reports whether l carries no position.
func (l Location) IsUnknown() bool {
	return l == UnknownLoc
}

func (l Location) String() string {
	if l.IsUnknown() {
		return "loc(unknown)"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}
