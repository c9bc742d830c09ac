package value

import (
	"strings"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/samber/lo"
)

// CallOp is a value.call operation invoking a function by symbol name.
type CallOp struct {
	*ir.Operation
}

// BuildCall creates a call to callee with the given result types.
func BuildCall(b *ir.Builder, loc ir.Location, callee string, results []ir.Type, args ...*ir.Value) CallOp {
	state := ir.NewState(loc, CallOpName)
	state.AddAttribute(CalleeAttrName, ir.SymbolRefAttr(callee))
	state.AddOperands(args...)
	state.AddTypes(results...)
	return CallOp{b.Create(state)}
}

// BuildCallFunc creates a call to f, taking the result types from its signature.
func BuildCallFunc(b *ir.Builder, loc ir.Location, f FuncOp, args ...*ir.Value) CallOp {
	return BuildCall(b, loc, f.SymName(), f.CallableResults(), args...)
}

// Callee returns the name of the called function.
func (c CallOp) Callee() string { return c.GetAttrString(CalleeAttrName, "") }

// CalleeType returns the signature implied by the operands and results of the call.
func (c CallOp) CalleeType() ir.FunctionType {
	return ir.NewFunctionType(c.OperandTypes(), c.ResultTypes())
}

func verifyCall(op *ir.Operation) error {
	c := CallOp{op}
	if c.Callee() == "" {
		return op.EmitOpError("requires a '%s' attribute", CalleeAttrName)
	}
	if ir.NearestSymbolTableScope(op) == nil {
		return nil
	}
	callee := resolveCallee(op, c.Callee())
	var fnType ir.FunctionType
	if f, ok := AsFunc(callee); ok {
		fnType = f.Type()
	} else if l, ok := AsLambda(callee); ok {
		fnType = l.Type()
	} else {
		return op.EmitOpError("'@%s' does not reference a valid function", c.Callee())
	}
	if !c.CalleeType().Equal(fnType) {
		return op.EmitOpError("call signature %s does not match callee '@%s' of type %s", c.CalleeType(), c.Callee(), fnType)
	}
	return nil
}

// resolveCallee searches the bodies enclosing op, innermost first, up to and
// including the nearest symbol table scope. Lambdas are found in the function
// defining them, functions in the module.
func resolveCallee(op *ir.Operation, name string) *ir.Operation {
	for p := op.ParentOp(); p != nil; p = p.ParentOp() {
		if found := ir.LookupSymbolIn(p, name); found != nil {
			return found
		}
		if ir.IsSymbolTableScope(p) {
			break
		}
	}
	return nil
}

// BuildReturn creates a value.return terminator.
func BuildReturn(b *ir.Builder, loc ir.Location, values ...*ir.Value) *ir.Operation {
	state := ir.NewState(loc, ReturnOpName)
	state.AddOperands(values...)
	return b.Create(state)
}

func verifyReturn(op *ir.Operation) error {
	parent := op.ParentOp()
	var results []ir.Type
	if f, ok := AsFunc(parent); ok {
		if f.IsExternal() {
			return nil
		}
		results = f.CallableResults()
	} else if l, ok := AsLambda(parent); ok {
		results = l.CallableResults()
	} else {
		return nil
	}
	if !ir.TypesEqual(op.OperandTypes(), results) {
		return op.EmitOpError("operand types (%s) do not match function results (%s)",
			typeList(op.OperandTypes()), typeList(results))
	}
	return nil
}

// BuildYield creates a value.yield terminator.
func BuildYield(b *ir.Builder, loc ir.Location, values ...*ir.Value) *ir.Operation {
	state := ir.NewState(loc, YieldOpName)
	state.AddOperands(values...)
	return b.Create(state)
}

// ConstantOp is a value.constant operation.
type ConstantOp struct {
	*ir.Operation
}

// BuildConstant creates a constant of type t holding attr.
func BuildConstant(b *ir.Builder, loc ir.Location, attr ir.Attribute, t ir.Type) ConstantOp {
	state := ir.NewState(loc, ConstantOpName)
	state.AddAttribute(ValueAttrName, attr)
	state.AddTypes(t)
	return ConstantOp{b.Create(state)}
}

// Value returns the constant attribute.
func (c ConstantOp) Value() ir.Attribute { return c.Attr(ValueAttrName) }

func foldConstant(op *ir.Operation, _ []ir.Attribute) (ir.FoldResult, bool) {
	attr := op.Attr(ValueAttrName)
	return ir.FoldResult{Attr: attr}, attr != nil
}

// BuildCast creates a value.cast converting v to t.
func BuildCast(b *ir.Builder, loc ir.Location, v *ir.Value, t ir.Type) *ir.Operation {
	state := ir.NewState(loc, CastOpName)
	state.AddOperands(v)
	state.AddTypes(t)
	return b.Create(state)
}

// FoldCast folds a cast of an integer constant to an integer, index or float constant.
func FoldCast(op *ir.Operation, operands []ir.Attribute) (ir.FoldResult, bool) {
	if len(operands) != 1 {
		return ir.FoldResult{}, false
	}
	in, ok := operands[0].(ir.IntegerAttr)
	if !ok {
		return ir.FoldResult{}, false
	}
	resultType := op.Result(0).Type()
	switch {
	case ir.IsIntOrIndex(resultType):
		return ir.FoldResult{Attr: ir.IntegerAttr{Value: in.Value, Type: resultType}}, true
	case ir.IsFloat(resultType):
		return ir.FoldResult{Attr: ir.FloatAttr{Value: float64(in.Value), Type: resultType}}, true
	}
	return ir.FoldResult{}, false
}

// BuildGetElement creates a value.get_element extracting the element of a
// single-element shaped value. Non-shaped values pass through with their own type.
func BuildGetElement(b *ir.Builder, loc ir.Location, v *ir.Value) *ir.Operation {
	state := ir.NewState(loc, GetElementOpName)
	state.AddOperands(v)
	state.AddTypes(ir.ElementTypeOf(v.Type()))
	return b.Create(state)
}

// FoldGetElement folds to the operand when it already has the result type.
func FoldGetElement(op *ir.Operation, _ []ir.Attribute) (ir.FoldResult, bool) {
	in := op.Operand(0)
	if in.Type().Equal(op.Result(0).Type()) {
		return ir.FoldResult{Value: in}, true
	}
	return ir.FoldResult{}, false
}

// BuildCmp creates a comparison. The result is i1, or a vector of i1 for vector operands.
func BuildCmp(b *ir.Builder, loc ir.Location, pred CmpOpPredicate, lhs, rhs *ir.Value) *ir.Operation {
	var result ir.Type = ir.I1
	if vt, ok := lhs.Type().(ir.VectorType); ok {
		result = ir.VectorType{Shape: vt.Shape.Clone(), Elem: ir.I1}
	}
	state := ir.NewState(loc, CmpOpName)
	state.AddAttribute(PredicateAttrName, ir.IntAttr(int64(pred)))
	state.AddOperands(lhs, rhs)
	state.AddTypes(result)
	return b.Create(state)
}

// BuildBin creates a binary operation whose result has the type of lhs.
func BuildBin(b *ir.Builder, loc ir.Location, pred BinaryOpPredicate, lhs, rhs *ir.Value) *ir.Operation {
	state := ir.NewState(loc, BinOpName)
	state.AddAttribute(PredicateAttrName, ir.IntAttr(int64(pred)))
	state.AddOperands(lhs, rhs)
	state.AddTypes(lhs.Type())
	return b.Create(state)
}

// BuildUnary creates a unary operation whose result has the element type of input.
func BuildUnary(b *ir.Builder, loc ir.Location, pred UnaryOpPredicate, input *ir.Value) *ir.Operation {
	state := ir.NewState(loc, UnaryOpName)
	state.AddAttribute(PredicateAttrName, ir.IntAttr(int64(pred)))
	state.AddOperands(input)
	state.AddTypes(ir.ElementTypeOf(input.Type()))
	return b.Create(state)
}

func verifySameOperandTypes(op *ir.Operation) error {
	if op.NumOperands() != 2 {
		return op.EmitOpError("expects 2 operands, got %d", op.NumOperands())
	}
	lhs, rhs := op.Operand(0).Type(), op.Operand(1).Type()
	if !lhs.Equal(rhs) {
		return op.EmitOpError("operand types must match, got %s and %s", lhs, rhs)
	}
	return nil
}

func typeList(types []ir.Type) string {
	return strings.Join(lo.Map(types, func(t ir.Type, _ int) string { return t.String() }), ", ")
}
