package ir

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// TypeParser is a cursor over the textual body of a dialect type.
type TypeParser struct {
	input   string
	pos     int
	loc     Location
	nameLoc Location
}

// NewTypeParser creates a parser over input; loc is where input starts.
func NewTypeParser(input string, loc Location) *TypeParser {
	return &TypeParser{input: input, loc: loc, nameLoc: loc}
}

// NameLoc returns the location of the last parsed keyword.
func (p *TypeParser) NameLoc() Location { return p.nameLoc }

// AtEnd reports whether the whole input was consumed.
func (p *TypeParser) AtEnd() bool {
	p.skipSpace()
	return p.pos >= len(p.input)
}

// ParseKeyword consumes a bare identifier.
func (p *TypeParser) ParseKeyword() (string, error) {
	p.skipSpace()
	p.nameLoc = p.locAt(p.pos)
	start := p.pos
	for p.pos < len(p.input) {
		r := rune(p.input[p.pos])
		if !(unicode.IsLetter(r) || r == '_' || (p.pos > start && (unicode.IsDigit(r) || r == '.' || r == '$'))) {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.EmitError("expected keyword")
	}
	return p.input[start:p.pos], nil
}

// EmitError creates a diagnostic at the last parsed keyword.
func (p *TypeParser) EmitError(format string, args ...any) *Diagnostic {
	return newDiagnostic(p.nameLoc, "", format, args...)
}

func (p *TypeParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *TypeParser) locAt(offset int) Location {
	if p.loc.IsUnknown() {
		return p.loc
	}
	return Location{File: p.loc.File, Line: p.loc.Line, Col: p.loc.Col + offset}
}

// ParseType parses a dialect type written as "!namespace.body" using the
// registered dialect's parser.
func (c *Context) ParseType(text string, loc Location) (Type, error) {
	if !strings.HasPrefix(text, "!") {
		return nil, errors.Wrapf(ErrUnknownType, "%s: %q is not a dialect type", loc, text)
	}
	namespace, body, ok := strings.Cut(text[1:], ".")
	if !ok {
		return nil, errors.Wrapf(ErrUnknownType, "%s: %q has no dialect namespace", loc, text)
	}
	d, ok := c.Dialect(namespace)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDialect, "%s: %q", loc, namespace)
	}
	bodyLoc := loc
	if !loc.IsUnknown() {
		bodyLoc.Col += len(namespace) + 2
	}
	p := NewTypeParser(body, bodyLoc)
	t, err := d.ParseType(p)
	if err != nil {
		return nil, err
	}
	if !p.AtEnd() {
		return nil, p.EmitError("unexpected trailing characters in type %q", text)
	}
	return t, nil
}
