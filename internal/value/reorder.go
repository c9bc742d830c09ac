package value

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ReorderOp is a value.reorder operation: a zero-copy view of a memref with its
// dimensions permuted.
type ReorderOp struct {
	*ir.Operation
}

// ReorderedType returns the type of source viewed with its dimensions permuted:
// dimension i of the result is dimension order[i] of source, and the layout map
// addresses the same element as source does.
func ReorderedType(source ir.MemRefType, order []int) (ir.MemRefType, error) {
	view, err := layout.Permute(source.View(), order)
	if err != nil {
		return ir.MemRefType{}, errors.WithMessagef(err, "reordering %s", source)
	}
	return ir.MemRefType{
		Shape:       view.Shape,
		Elem:        source.Elem,
		Layout:      view.Map,
		MemorySpace: source.MemorySpace,
	}, nil
}

// BuildReorder creates a reorder of source, which must be a memref.
func BuildReorder(b *ir.Builder, loc ir.Location, source *ir.Value, order []int) (ReorderOp, error) {
	memref, ok := source.Type().(ir.MemRefType)
	if !ok {
		return ReorderOp{}, errors.Errorf("%s: reorder source must be a memref, got %s", loc, source.Type())
	}
	result, err := ReorderedType(memref, order)
	if err != nil {
		return ReorderOp{}, errors.WithMessagef(err, "%s", loc)
	}
	state := ir.NewState(loc, ReorderOpName)
	state.AddOperands(source)
	state.AddAttribute(OrderAttrName, ir.IntArrayAttr(lo.Map(order, func(d int, _ int) int64 { return int64(d) })...))
	state.AddTypes(result)
	return ReorderOp{b.Create(state)}, nil
}

// Order returns the permutation of the reorder.
func (r ReorderOp) Order() []int {
	return lo.Map(r.GetAttrInts(OrderAttrName), func(d int64, _ int) int { return int(d) })
}

func verifyReorder(op *ir.Operation) error {
	if op.NumOperands() != 1 || op.NumResults() != 1 {
		return op.EmitOpError("expects one operand and one result")
	}
	source, ok := op.Operand(0).Type().(ir.MemRefType)
	if !ok {
		return op.EmitOpError("source must be a memref, got %s", op.Operand(0).Type())
	}
	want, err := ReorderedType(source, ReorderOp{op}.Order())
	if err != nil {
		return op.EmitOpError("%v", err)
	}
	if got := op.Result(0).Type(); !got.Equal(want) {
		return op.EmitOpError("result type %s does not match reordered type %s", got, want)
	}
	return nil
}
