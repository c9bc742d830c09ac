package value

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/gomlx/exceptions"
	"github.com/samber/lo"
	"k8s.io/klog/v2"
)

// funcLike holds what value.func and value.lambda have in common: a symbol
// name, a function type attribute, argument attributes and a body region whose
// entry block arguments are the function arguments.
type funcLike struct {
	*ir.Operation
}

// SymName returns the symbol name of the function.
func (f funcLike) SymName() string { return ir.SymbolName(f.Operation) }

// Type returns the function signature. It is the zero FunctionType if the
// attribute is missing, which the verifier reports.
func (f funcLike) Type() ir.FunctionType {
	t, _ := f.GetAttrType(FunctionTypeAttrName).(ir.FunctionType)
	return t
}

func (f funcLike) setType(t ir.FunctionType) {
	f.SetAttr(FunctionTypeAttrName, ir.TypeAttr{Type: t})
}

// ExecTarget returns the device the function runs on.
func (f funcLike) ExecTarget() ExecutionTarget {
	return ExecutionTarget(f.GetAttrInt(ExecTargetAttrName, int64(TargetCPU)))
}

// Body returns the function body region.
func (f funcLike) Body() *ir.Region { return f.Region(0) }

// EntryBlock returns the first block of the body, or nil.
func (f funcLike) EntryBlock() *ir.Block { return f.Body().Front() }

// CallableResults returns the result types of the signature.
func (f funcLike) CallableResults() []ir.Type { return f.Type().Results }

// ArgAttrs returns the attribute dictionary of argument i; it is empty when none are set.
func (f funcLike) ArgAttrs(i int) ir.DictAttr {
	all := f.allArgAttrs()
	if i < 0 || i >= len(all) {
		exceptions.Panicf("argument index %d out of range [0, %d)", i, len(all))
	}
	return all[i]
}

// SetArgAttr sets attribute name on argument i.
func (f funcLike) SetArgAttr(i int, name string, attr ir.Attribute) {
	all := f.allArgAttrs()
	if i < 0 || i >= len(all) {
		exceptions.Panicf("argument index %d out of range [0, %d)", i, len(all))
	}
	all[i] = all[i].Clone()
	all[i][name] = attr
	f.setAllArgAttrs(all)
}

// allArgAttrs returns one dictionary per signature input.
func (f funcLike) allArgAttrs() []ir.DictAttr {
	n := len(f.Type().Inputs)
	out := make([]ir.DictAttr, n)
	stored, _ := f.Attr(ArgAttrsAttrName).(ir.ArrayAttr)
	for i := range out {
		if i < len(stored) {
			if d, ok := stored[i].(ir.DictAttr); ok {
				out[i] = d
				continue
			}
		}
		out[i] = ir.DictAttr{}
	}
	return out
}

func (f funcLike) setAllArgAttrs(all []ir.DictAttr) {
	if lo.EveryBy(all, func(d ir.DictAttr) bool { return len(d) == 0 }) {
		f.RemoveAttr(ArgAttrsAttrName)
		return
	}
	f.SetAttr(ArgAttrsAttrName, ir.ArrayAttr(lo.Map(all, func(d ir.DictAttr, _ int) ir.Attribute { return d })))
}

// EraseArguments removes the arguments at indices from the signature, from the
// argument attributes and from the entry block. Uses of erased block arguments
// must already be gone.
func (f funcLike) EraseArguments(indices ...int) {
	fnType := f.Type()
	n := len(fnType.Inputs)
	erase := make([]bool, n)
	for _, i := range indices {
		if i < 0 || i >= n {
			exceptions.Panicf("%s @%s: argument index %d out of range [0, %d)", f.Name(), f.SymName(), i, n)
		}
		erase[i] = true
	}
	kept := func(_ ir.Type, i int) bool { return !erase[i] }
	argAttrs := lo.Filter(f.allArgAttrs(), func(_ ir.DictAttr, i int) bool { return !erase[i] })

	f.setType(ir.NewFunctionType(lo.Filter(fnType.Inputs, kept), fnType.Results))
	f.setAllArgAttrs(argAttrs)

	// Erase from the back so the remaining indices stay valid.
	if entry := f.EntryBlock(); entry != nil {
		for i := n - 1; i >= 0; i-- {
			if erase[i] && i < entry.NumArguments() {
				entry.EraseArgument(i)
			}
		}
	}
	klog.V(4).Infof("value: erased %d arguments of @%s", len(indices), f.SymName())
}

// FuncOp is a value.func operation: a named function compiled for an execution target.
type FuncOp struct {
	funcLike
}

// IsExternal reports whether the function is only a declaration.
func (f FuncOp) IsExternal() bool { return f.HasAttr(ExternalAttrName) }

// CallableRegion returns the body, or nil for an external function.
func (f FuncOp) CallableRegion() *ir.Region {
	if f.IsExternal() {
		return nil
	}
	return f.Body()
}

// AsFunc returns op as a FuncOp if it is a value.func.
func AsFunc(op *ir.Operation) (FuncOp, bool) {
	if op == nil || op.Name() != FuncOpName {
		return FuncOp{}, false
	}
	return FuncOp{funcLike{op}}, true
}

// LambdaOp is a value.lambda operation: a function defined inside another function's body.
type LambdaOp struct {
	funcLike
}

// CallableRegion returns the body; lambdas are never external.
func (l LambdaOp) CallableRegion() *ir.Region { return l.Body() }

// AsLambda returns op as a LambdaOp if it is a value.lambda.
func AsLambda(op *ir.Operation) (LambdaOp, bool) {
	if op == nil || op.Name() != LambdaOpName {
		return LambdaOp{}, false
	}
	return LambdaOp{funcLike{op}}, true
}

func buildFuncLike(b *ir.Builder, loc ir.Location, opName, name string, fnType ir.FunctionType, target ExecutionTarget) (*ir.Operation, *ir.Block) {
	state := ir.NewState(loc, opName)
	state.AddAttribute(ir.SymbolAttrName, ir.StringAttr(name))
	state.AddAttribute(FunctionTypeAttrName, ir.TypeAttr{Type: ir.NewFunctionType(fnType.Inputs, fnType.Results)})
	state.AddAttribute(ExecTargetAttrName, ir.IntAttr(int64(target)))

	entry := ir.NewBlock()
	entry.AddArguments(fnType.Inputs, loc)
	state.AddRegion().PushBack(entry)

	op := b.Create(state)
	klog.V(4).Infof("value: built %s @%s %s for %s", opName, name, fnType, target)
	return op, entry
}

// BuildFunc creates a function whose entry block has one argument per input of fnType.
// The body is left empty for the caller to fill.
func BuildFunc(b *ir.Builder, loc ir.Location, name string, fnType ir.FunctionType, target ExecutionTarget) FuncOp {
	op, _ := buildFuncLike(b, loc, FuncOpName, name, fnType, target)
	return FuncOp{funcLike{op}}
}

// BuildExternalFunc creates a function declaration. Its body holds only a return.
func BuildExternalFunc(b *ir.Builder, loc ir.Location, name string, fnType ir.FunctionType, target ExecutionTarget) FuncOp {
	op, entry := buildFuncLike(b, loc, FuncOpName, name, fnType, target)
	op.SetAttr(ExternalAttrName, ir.UnitAttr{})

	defer b.InsertionGuard()()
	b.SetInsertionPointToEnd(entry)
	BuildReturn(b, loc)
	return FuncOp{funcLike{op}}
}

// BuildLambda creates a lambda whose entry block has one argument per input of fnType.
func BuildLambda(b *ir.Builder, loc ir.Location, name string, fnType ir.FunctionType, target ExecutionTarget) LambdaOp {
	op, _ := buildFuncLike(b, loc, LambdaOpName, name, fnType, target)
	return LambdaOp{funcLike{op}}
}

func verifyFunc(op *ir.Operation) error {
	if err := verifyFunctionType(op); err != nil {
		return err
	}
	if op.HasAttr(ExternalAttrName) {
		return nil
	}
	return verifyEntryArguments(op)
}

func verifyLambda(op *ir.Operation) error {
	if err := verifyFunctionType(op); err != nil {
		return err
	}
	return verifyEntryArguments(op)
}

func verifyFunctionType(op *ir.Operation) error {
	if _, ok := op.GetAttrType(FunctionTypeAttrName).(ir.FunctionType); !ok {
		return op.EmitOpError("requires '%s' attribute of function type", FunctionTypeAttrName)
	}
	if ir.SymbolName(op) == "" {
		return op.EmitOpError("requires a '%s' attribute", ir.SymbolAttrName)
	}
	return nil
}

func verifyEntryArguments(op *ir.Operation) error {
	fnType := op.GetAttrType(FunctionTypeAttrName).(ir.FunctionType)
	entry := op.Region(0).Front()
	if entry == nil {
		return op.EmitOpError("expects a non-empty body")
	}
	if entry.NumArguments() != len(fnType.Inputs) {
		return op.EmitOpError("entry block must have %d arguments to match function signature, got %d",
			len(fnType.Inputs), entry.NumArguments())
	}
	for i, want := range fnType.Inputs {
		got := entry.Argument(i).Type()
		if !got.Equal(want) {
			return op.EmitOpError("type of entry block argument #%d(%s) must match the type of the corresponding argument in function signature(%s)",
				i, got, want)
		}
	}
	return nil
}
