package value

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/pkg/errors"
)

// ReduceBodyFn fills the body of a reduction. The builder inserts into the body
// block; acc and elem are its arguments. The returned value is yielded.
type ReduceBodyFn func(b *ir.Builder, loc ir.Location, acc, elem *ir.Value) (*ir.Value, error)

// MapBodyFn fills the map body of a map-reduce. The returned value is yielded.
type MapBodyFn func(b *ir.Builder, loc ir.Location, elem *ir.Value) (*ir.Value, error)

// ReduceOp is a value.reduce operation folding the elements of a shaped input
// into an accumulator starting at init.
type ReduceOp struct {
	*ir.Operation
}

// Input returns the reduced value.
func (r ReduceOp) Input() *ir.Value { return r.Operand(0) }

// Init returns the initial accumulator.
func (r ReduceOp) Init() *ir.Value { return r.Operand(1) }

// Body returns the reduction block.
func (r ReduceOp) Body() *ir.Block { return r.Region(0).Front() }

// MapReduceOp is a value.map_reduce operation: every element is first passed
// through the map body, then folded by the reduce body.
type MapReduceOp struct {
	*ir.Operation
}

// Input returns the reduced value.
func (r MapReduceOp) Input() *ir.Value { return r.Operand(0) }

// Init returns the initial accumulator.
func (r MapReduceOp) Init() *ir.Value { return r.Operand(1) }

// MapBody returns the map block.
func (r MapReduceOp) MapBody() *ir.Block { return r.Region(0).Front() }

// ReduceBody returns the reduction block.
func (r MapReduceOp) ReduceBody() *ir.Block { return r.Region(1).Front() }

func reductionState(loc ir.Location, name string, input, init *ir.Value) (*ir.OperationState, error) {
	if _, ok := input.Type().(ir.ShapedType); !ok {
		return nil, errors.Errorf("%s: %s input must be shaped, got %s", loc, name, input.Type())
	}
	state := ir.NewState(loc, name)
	state.AddOperands(input, init)
	state.AddTypes(init.Type())
	return state, nil
}

// fillBody runs fn with the insertion point at the end of block and appends a
// value.yield of its result. The caller's insertion point is restored on every
// exit path, panics included.
func fillBody(b *ir.Builder, loc ir.Location, block *ir.Block, fn func() (*ir.Value, error)) error {
	defer b.InsertionGuard()()
	b.SetInsertionPointToEnd(block)
	result, err := fn()
	if err != nil {
		return err
	}
	if result == nil {
		return errors.Errorf("%s: body produced no value to yield", loc)
	}
	BuildYield(b, loc, result)
	return nil
}

// BuildReduce creates a reduction of input starting from init. The body block
// has two arguments of the accumulator type. If body is nil the block is left
// empty for the caller to fill.
func BuildReduce(b *ir.Builder, loc ir.Location, input, init *ir.Value, body ReduceBodyFn) (ReduceOp, error) {
	state, err := reductionState(loc, ReduceOpName, input, init)
	if err != nil {
		return ReduceOp{}, err
	}
	block := ir.NewBlock()
	acc := block.AddArgument(init.Type(), loc)
	elem := block.AddArgument(init.Type(), loc)
	state.AddRegion().PushBack(block)

	if body != nil {
		err := fillBody(b, loc, block, func() (*ir.Value, error) { return body(b, loc, acc, elem) })
		if err != nil {
			return ReduceOp{}, errors.WithMessage(err, "building reduce body")
		}
	}
	return ReduceOp{b.Create(state)}, nil
}

// BuildMapReduce creates a map-reduce of input starting from init. The map block
// takes one element, the reduce block an accumulator and a mapped element, all
// of the accumulator type. Nil callbacks leave their block empty.
func BuildMapReduce(b *ir.Builder, loc ir.Location, input, init *ir.Value, mapFn MapBodyFn, reduceFn ReduceBodyFn) (MapReduceOp, error) {
	state, err := reductionState(loc, MapReduceOpName, input, init)
	if err != nil {
		return MapReduceOp{}, err
	}
	mapBlock := ir.NewBlock()
	mapped := mapBlock.AddArgument(init.Type(), loc)
	state.AddRegion().PushBack(mapBlock)

	reduceBlock := ir.NewBlock()
	acc := reduceBlock.AddArgument(init.Type(), loc)
	elem := reduceBlock.AddArgument(init.Type(), loc)
	state.AddRegion().PushBack(reduceBlock)

	if mapFn != nil {
		err := fillBody(b, loc, mapBlock, func() (*ir.Value, error) { return mapFn(b, loc, mapped) })
		if err != nil {
			return MapReduceOp{}, errors.WithMessage(err, "building map body")
		}
	}
	if reduceFn != nil {
		err := fillBody(b, loc, reduceBlock, func() (*ir.Value, error) { return reduceFn(b, loc, acc, elem) })
		if err != nil {
			return MapReduceOp{}, errors.WithMessage(err, "building reduce body")
		}
	}
	return MapReduceOp{b.Create(state)}, nil
}

func verifyReduce(op *ir.Operation) error {
	if err := verifyReductionOperands(op); err != nil {
		return err
	}
	return verifyYieldingBlock(op, 0, 2)
}

func verifyMapReduce(op *ir.Operation) error {
	if err := verifyReductionOperands(op); err != nil {
		return err
	}
	if err := verifyYieldingBlock(op, 0, 1); err != nil {
		return err
	}
	return verifyYieldingBlock(op, 1, 2)
}

func verifyReductionOperands(op *ir.Operation) error {
	if op.NumOperands() != 2 || op.NumResults() != 1 {
		return op.EmitOpError("expects an input, an initial value and one result")
	}
	if _, ok := op.Operand(0).Type().(ir.ShapedType); !ok {
		return op.EmitOpError("input must be shaped, got %s", op.Operand(0).Type())
	}
	if !op.Operand(1).Type().Equal(op.Result(0).Type()) {
		return op.EmitOpError("result type %s must match initial value type %s", op.Result(0).Type(), op.Operand(1).Type())
	}
	return nil
}

// verifyYieldingBlock checks that region i holds a block with numArgs arguments
// of the accumulator type ending in a yield of one accumulator.
func verifyYieldingBlock(op *ir.Operation, i, numArgs int) error {
	accType := op.Result(0).Type()
	block := op.Region(i).Front()
	if block == nil {
		return op.EmitOpError("region #%d is empty", i)
	}
	if block.NumArguments() != numArgs {
		return op.EmitOpError("region #%d expects %d arguments, got %d", i, numArgs, block.NumArguments())
	}
	for j, t := range block.ArgumentTypes() {
		if !t.Equal(accType) {
			return op.EmitOpError("region #%d argument #%d has type %s, expected %s", i, j, t, accType)
		}
	}
	yield := block.Back()
	if yield == nil || yield.Name() != YieldOpName {
		return op.EmitOpError("region #%d must end with '%s'", i, YieldOpName)
	}
	if yield.NumOperands() != 1 || !yield.Operand(0).Type().Equal(accType) {
		return op.EmitOpError("region #%d must yield one value of type %s", i, accType)
	}
	return nil
}
