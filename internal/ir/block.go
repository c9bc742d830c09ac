package ir

import (
	"slices"

	"github.com/gomlx/exceptions"
)

// Block is an ordered list of operations with typed arguments.
type Block struct {
	args   []*Value
	ops    []*Operation
	parent *Region
}

// NewBlock creates a detached, empty block.
func NewBlock() *Block {
	return &Block{}
}

// AddArgument appends an argument of type t.
func (b *Block) AddArgument(t Type, loc Location) *Value {
	v := &Value{typ: t, loc: loc, block: b, index: len(b.args)}
	b.args = append(b.args, v)
	return v
}

// AddArguments appends one argument per type.
func (b *Block) AddArguments(types []Type, loc Location) []*Value {
	out := make([]*Value, len(types))
	for i, t := range types {
		out[i] = b.AddArgument(t, loc)
	}
	return out
}

// NumArguments returns the number of block arguments.
func (b *Block) NumArguments() int { return len(b.args) }

// Argument returns argument i.
func (b *Block) Argument(i int) *Value { return b.args[i] }

// Arguments returns the block arguments. The slice must not be modified.
func (b *Block) Arguments() []*Value { return b.args }

// ArgumentTypes returns the types of the block arguments.
func (b *Block) ArgumentTypes() []Type { return Types(b.args) }

// EraseArgument removes argument i and renumbers the ones after it.
func (b *Block) EraseArgument(i int) {
	if i < 0 || i >= len(b.args) {
		exceptions.Panicf("block argument index %d out of range [0, %d)", i, len(b.args))
	}
	b.args[i].block = nil
	b.args = slices.Delete(b.args, i, i+1)
	for j := i; j < len(b.args); j++ {
		b.args[j].index = j
	}
}

// Operations returns the operations of the block. The slice must not be modified.
func (b *Block) Operations() []*Operation { return b.ops }

// Len returns the number of operations in the block.
func (b *Block) Len() int { return len(b.ops) }

// Empty reports whether the block holds no operations.
func (b *Block) Empty() bool { return len(b.ops) == 0 }

// Front returns the first operation, or nil.
func (b *Block) Front() *Operation {
	if len(b.ops) == 0 {
		return nil
	}
	return b.ops[0]
}

// Back returns the last operation, or nil.
func (b *Block) Back() *Operation {
	if len(b.ops) == 0 {
		return nil
	}
	return b.ops[len(b.ops)-1]
}

// Terminator returns the last operation if it is a terminator.
func (b *Block) Terminator() *Operation {
	last := b.Back()
	if last == nil || !last.HasTrait(TraitTerminator) {
		return nil
	}
	return last
}

// Parent returns the region containing the block.
func (b *Block) Parent() *Region { return b.parent }

// ParentOp returns the operation owning the block's region.
func (b *Block) ParentOp() *Operation {
	if b.parent == nil {
		return nil
	}
	return b.parent.parent
}

// insertBefore inserts op before the operation before; a nil before appends.
func (b *Block) insertBefore(op, before *Operation) {
	op.block = b
	if before == nil {
		b.ops = append(b.ops, op)
		return
	}
	pos := slices.Index(b.ops, before)
	if pos < 0 {
		exceptions.Panicf("insertion point %q is not in the block", before.Name())
	}
	b.ops = slices.Insert(b.ops, pos, op)
}

func (b *Block) remove(op *Operation) {
	pos := slices.Index(b.ops, op)
	if pos < 0 {
		return
	}
	b.ops = slices.Delete(b.ops, pos, pos+1)
	op.block = nil
}

// Region is an ordered list of blocks owned by an operation.
type Region struct {
	blocks []*Block
	parent *Operation
}

// NewRegion creates a detached, empty region.
func NewRegion() *Region {
	return &Region{}
}

// PushBack appends a block to the region.
func (r *Region) PushBack(b *Block) {
	b.parent = r
	r.blocks = append(r.blocks, b)
}

// Blocks returns the blocks of the region.
func (r *Region) Blocks() []*Block { return r.blocks }

// Empty reports whether the region holds no blocks.
func (r *Region) Empty() bool { return len(r.blocks) == 0 }

// Front returns the entry block, or nil.
func (r *Region) Front() *Block {
	if len(r.blocks) == 0 {
		return nil
	}
	return r.blocks[0]
}

// ParentOp returns the operation owning the region.
func (r *Region) ParentOp() *Operation { return r.parent }
