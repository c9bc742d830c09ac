package ir

import (
	"io"
	"sort"

	"github.com/gomlx/exceptions"
)

// Trait is a set of structural properties of an operation kind.
type Trait uint32

// Operation traits.
const (
	TraitTerminator Trait = 1 << iota
	TraitSymbol
	TraitSymbolTable
	TraitIsolatedFromAbove
	TraitFunctionLike
	TraitCallable
	TraitSingleBlock
	TraitPure
)

// Has reports whether all traits in other are set.
func (t Trait) Has(other Trait) bool {
	return t&other == other
}

// VerifyFunc checks the invariants of one operation and returns a diagnostic on failure.
type VerifyFunc func(op *Operation) error

// FoldResult is the outcome of folding an operation: either a constant or an existing value.
type FoldResult struct {
	Attr  Attribute
	Value *Value
}

// FoldFunc attempts to fold op given the constant values of its operands (nil when unknown).
type FoldFunc func(op *Operation, operands []Attribute) (FoldResult, bool)

// OpInfo describes a registered operation kind.
type OpInfo struct {
	Name    string
	Traits  Trait
	Regions int // exact number of regions the operation owns
	Verify  VerifyFunc
	Fold    FoldFunc
	Dialect Dialect
}

// Dialect groups operations and types under a namespace.
type Dialect interface {
	// Namespace is the prefix of the dialect's op names, e.g. "value".
	Namespace() string
	// ParseType parses the body of a dialect type after "!namespace.".
	ParseType(p *TypeParser) (Type, error)
	// PrintType writes the body of a dialect type.
	PrintType(t Type, w io.Writer)
	// MaterializeConstant creates an operation producing value as a runtime value of type t.
	MaterializeConstant(b *Builder, value Attribute, t Type, loc Location) *Operation
}

// Context holds the registered dialects and operation kinds.
type Context struct {
	ops      map[string]*OpInfo
	dialects map[string]Dialect
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		ops:      make(map[string]*OpInfo),
		dialects: make(map[string]Dialect),
	}
}

// RegisterDialect adds a dialect. Registering the same namespace twice is a programming error.
func (c *Context) RegisterDialect(d Dialect) {
	if _, ok := c.dialects[d.Namespace()]; ok {
		exceptions.Panicf("dialect %q registered twice", d.Namespace())
	}
	c.dialects[d.Namespace()] = d
}

// Dialect returns the dialect registered under namespace.
func (c *Context) Dialect(namespace string) (Dialect, bool) {
	d, ok := c.dialects[namespace]
	return d, ok
}

// RegisterOp adds an operation kind. Registering the same name twice is a programming error.
func (c *Context) RegisterOp(info OpInfo) {
	if _, ok := c.ops[info.Name]; ok {
		exceptions.Panicf("operation %q registered twice", info.Name)
	}
	c.ops[info.Name] = &info
}

// Lookup returns the description of a registered operation kind.
func (c *Context) Lookup(name string) (*OpInfo, bool) {
	info, ok := c.ops[name]
	return info, ok
}

// RegisteredOps returns the sorted names of all registered operations.
func (c *Context) RegisteredOps() []string {
	names := make([]string, 0, len(c.ops))
	for name := range c.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fold runs the registered folder of op, if any.
func Fold(op *Operation, operands []Attribute) (FoldResult, bool) {
	if op.info == nil || op.info.Fold == nil {
		return FoldResult{}, false
	}
	return op.info.Fold(op, operands)
}
