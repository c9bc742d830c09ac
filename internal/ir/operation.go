package ir

import (
	"github.com/gomlx/exceptions"
)

// OperationState collects everything needed to create an operation.
type OperationState struct {
	Name       string
	Loc        Location
	Operands   []*Value
	Types      []Type
	Attributes DictAttr
	Regions    []*Region
}

// NewState creates an empty state for an operation called name.
func NewState(loc Location, name string) *OperationState {
	return &OperationState{Name: name, Loc: loc, Attributes: DictAttr{}}
}

// AddOperands appends operands.
func (s *OperationState) AddOperands(values ...*Value) {
	s.Operands = append(s.Operands, values...)
}

// AddTypes appends result types.
func (s *OperationState) AddTypes(types ...Type) {
	s.Types = append(s.Types, types...)
}

// AddAttribute sets a named attribute.
func (s *OperationState) AddAttribute(name string, attr Attribute) {
	s.Attributes[name] = attr
}

// AddRegion adds an empty region that the created operation will own.
func (s *OperationState) AddRegion() *Region {
	r := NewRegion()
	s.Regions = append(s.Regions, r)
	return r
}

// Operation is a generic IR operation.
type Operation struct {
	name     string
	info     *OpInfo
	loc      Location
	operands []*Value
	results  []*Value
	attrs    DictAttr
	regions  []*Region
	block    *Block
}

// NewOperation creates a detached operation from state. info may be nil for
// unregistered operations.
func NewOperation(state *OperationState, info *OpInfo) *Operation {
	op := &Operation{
		name:     state.Name,
		info:     info,
		loc:      state.Loc,
		operands: append([]*Value(nil), state.Operands...),
		attrs:    state.Attributes.Clone(),
		regions:  state.Regions,
	}
	if op.attrs == nil {
		op.attrs = DictAttr{}
	}
	for i, t := range state.Types {
		op.results = append(op.results, &Value{typ: t, loc: state.Loc, owner: op, index: i})
	}
	for _, r := range op.regions {
		r.parent = op
	}
	return op
}

// Name returns the operation name, e.g. "value.func".
func (op *Operation) Name() string { return op.name }

// Info returns the registered description of the operation, or nil.
func (op *Operation) Info() *OpInfo { return op.info }

// Loc returns the operation's source location.
func (op *Operation) Loc() Location { return op.loc }

// HasTrait reports whether the registered operation has trait t.
func (op *Operation) HasTrait(t Trait) bool {
	return op.info != nil && op.info.Traits.Has(t)
}

// NumOperands returns the number of operands.
func (op *Operation) NumOperands() int { return len(op.operands) }

// Operand returns operand i.
func (op *Operation) Operand(i int) *Value { return op.operands[i] }

// Operands returns the operands. The slice must not be modified.
func (op *Operation) Operands() []*Value { return op.operands }

// OperandTypes returns the types of the operands.
func (op *Operation) OperandTypes() []Type { return Types(op.operands) }

// NumResults returns the number of results.
func (op *Operation) NumResults() int { return len(op.results) }

// Result returns result i.
func (op *Operation) Result(i int) *Value { return op.results[i] }

// Results returns the results. The slice must not be modified.
func (op *Operation) Results() []*Value { return op.results }

// ResultTypes returns the types of the results.
func (op *Operation) ResultTypes() []Type { return Types(op.results) }

// NumRegions returns the number of regions.
func (op *Operation) NumRegions() int { return len(op.regions) }

// Region returns region i.
func (op *Operation) Region(i int) *Region { return op.regions[i] }

// Regions returns the regions of op.
func (op *Operation) Regions() []*Region { return op.regions }

// Attrs returns the attribute dictionary of op.
func (op *Operation) Attrs() DictAttr { return op.attrs }

// Attr returns the attribute called name, or nil.
func (op *Operation) Attr(name string) Attribute { return op.attrs[name] }

// HasAttr reports whether an attribute called name is set.
func (op *Operation) HasAttr(name string) bool {
	_, ok := op.attrs[name]
	return ok
}

// SetAttr sets or replaces an attribute.
func (op *Operation) SetAttr(name string, attr Attribute) { op.attrs[name] = attr }

// RemoveAttr deletes an attribute.
func (op *Operation) RemoveAttr(name string) { delete(op.attrs, name) }

// GetAttrInt returns an integer attribute or default value.
func (op *Operation) GetAttrInt(name string, defaultVal int64) int64 {
	if a, ok := op.attrs[name].(IntegerAttr); ok {
		return a.Value
	}
	return defaultVal
}

// GetAttrInts returns an integer array attribute, or nil.
func (op *Operation) GetAttrInts(name string) []int64 {
	a, ok := op.attrs[name].(ArrayAttr)
	if !ok {
		return nil
	}
	ints, ok := a.Ints()
	if !ok {
		return nil
	}
	return ints
}

// GetAttrString returns a string or symbol attribute or default value.
func (op *Operation) GetAttrString(name, defaultVal string) string {
	switch a := op.attrs[name].(type) {
	case StringAttr:
		return string(a)
	case SymbolRefAttr:
		return string(a)
	}
	return defaultVal
}

// GetAttrType returns the type wrapped by a TypeAttr, or nil.
func (op *Operation) GetAttrType(name string) Type {
	if a, ok := op.attrs[name].(TypeAttr); ok {
		return a.Type
	}
	return nil
}

// Block returns the block containing op, or nil if detached.
func (op *Operation) Block() *Block { return op.block }

// ParentOp returns the operation whose region contains op, or nil.
func (op *Operation) ParentOp() *Operation {
	if op.block == nil {
		return nil
	}
	return op.block.ParentOp()
}

// Erase detaches op from its block.
func (op *Operation) Erase() {
	if op.block == nil {
		exceptions.Panicf("erasing detached operation %q", op.name)
	}
	op.block.remove(op)
}

// Walk calls fn for op and every nested operation in pre-order.
func (op *Operation) Walk(fn func(*Operation)) {
	fn(op)
	for _, r := range op.regions {
		for _, b := range r.blocks {
			for _, nested := range b.ops {
				nested.Walk(fn)
			}
		}
	}
}

// EmitError creates a diagnostic located at op.
func (op *Operation) EmitError(format string, args ...any) *Diagnostic {
	return newDiagnostic(op.loc, "", format, args...)
}

// EmitOpError creates a diagnostic located at op that names the operation.
func (op *Operation) EmitOpError(format string, args ...any) *Diagnostic {
	return newDiagnostic(op.loc, op.name, format, args...)
}
