package ir

import (
	"k8s.io/klog/v2"
)

// InsertionPoint identifies where new operations go: before Before in Block,
// or at the end of Block when Before is nil.
type InsertionPoint struct {
	Block  *Block
	Before *Operation
}

// IsSet reports whether the insertion point refers to a block.
func (ip InsertionPoint) IsSet() bool { return ip.Block != nil }

// Builder creates operations at an insertion point.
// A Builder is not safe for concurrent use.
type Builder struct {
	ctx *Context
	ip  InsertionPoint
}

// NewBuilder creates a builder with no insertion point; created operations are detached.
func NewBuilder(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

// Context returns the builder's context.
func (b *Builder) Context() *Context { return b.ctx }

// InsertionPoint returns the current insertion point.
func (b *Builder) InsertionPoint() InsertionPoint { return b.ip }

// RestoreInsertionPoint sets the insertion point to ip.
func (b *Builder) RestoreInsertionPoint(ip InsertionPoint) { b.ip = ip }

// SetInsertionPointToStart inserts subsequent operations at the start of block, in creation order.
func (b *Builder) SetInsertionPointToStart(block *Block) {
	b.ip = InsertionPoint{Block: block, Before: block.Front()}
}

// SetInsertionPointToEnd appends subsequent operations to block.
func (b *Builder) SetInsertionPointToEnd(block *Block) {
	b.ip = InsertionPoint{Block: block}
}

// SetInsertionPoint inserts subsequent operations before op.
func (b *Builder) SetInsertionPoint(op *Operation) {
	b.ip = InsertionPoint{Block: op.block, Before: op}
}

// SetInsertionPointAfter inserts subsequent operations right after op.
func (b *Builder) SetInsertionPointAfter(op *Operation) {
	block := op.block
	var before *Operation
	for i, o := range block.ops {
		if o == op && i+1 < len(block.ops) {
			before = block.ops[i+1]
		}
	}
	b.ip = InsertionPoint{Block: block, Before: before}
}

// InsertionGuard saves the insertion point and returns a function restoring it.
// Use it with defer so the previous point comes back on every exit path:
//
//	defer b.InsertionGuard()()
func (b *Builder) InsertionGuard() func() {
	saved := b.ip
	return func() { b.RestoreInsertionPoint(saved) }
}

// WithInsertionPoint runs fn with the insertion point set to ip and restores the
// previous insertion point afterwards, including when fn panics.
func (b *Builder) WithInsertionPoint(ip InsertionPoint, fn func() error) error {
	defer b.InsertionGuard()()
	b.ip = ip
	return fn()
}

// Create builds an operation from state and inserts it at the insertion point.
func (b *Builder) Create(state *OperationState) *Operation {
	var info *OpInfo
	if b.ctx != nil {
		info, _ = b.ctx.Lookup(state.Name)
	}
	if info == nil {
		klog.V(4).Infof("ir: creating unregistered operation %q", state.Name)
	}
	op := NewOperation(state, info)
	if b.ip.Block != nil {
		b.ip.Block.insertBefore(op, b.ip.Before)
	}
	return op
}
