package ir

// Value is an SSA value: either an operation result or a block argument.
type Value struct {
	typ   Type
	loc   Location
	owner *Operation // defining operation for results
	block *Block     // owning block for arguments
	index int
}

// Type returns the value's type.
func (v *Value) Type() Type { return v.typ }

// SetType changes the value's type. Used by structural rewrites.
func (v *Value) SetType(t Type) { v.typ = t }

// Loc returns the location the value was created at.
func (v *Value) Loc() Location { return v.loc }

// DefiningOp returns the operation producing v, or nil for block arguments.
func (v *Value) DefiningOp() *Operation { return v.owner }

// OwnerBlock returns the block v is an argument of, or nil for results.
func (v *Value) OwnerBlock() *Block { return v.block }

// IsBlockArgument reports whether v is a block argument.
func (v *Value) IsBlockArgument() bool { return v.block != nil }

// Index is the argument or result number of v.
func (v *Value) Index() int { return v.index }

// Types returns the types of values.
func Types(values []*Value) []Type {
	out := make([]Type, len(values))
	for i, v := range values {
		out[i] = v.typ
	}
	return out
}
