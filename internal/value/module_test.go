package value

import (
	"testing"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
	"github.com/born-ml/gpuir/internal/mma"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildModuleIsTerminated(t *testing.T) {
	b := newBuilder(t)
	mod := BuildModule(b, ir.UnknownLoc, "kernels")

	assert.Equal(t, "kernels", mod.SymName())
	body := mod.Body()
	require.Equal(t, 1, body.Len())
	assert.Equal(t, ModuleTerminatorOpName, body.Terminator().Name())

	mod.SetInsertionPointToBody(b)
	f := BuildFunc(b, ir.UnknownLoc, "f", ir.NewFunctionType(nil, nil), TargetCPU)
	assert.Same(t, f.Operation, body.Front())
	assert.Equal(t, ModuleTerminatorOpName, body.Back().Name())

	fb := ir.NewBuilder(b.Context())
	fb.SetInsertionPointToEnd(f.EntryBlock())
	BuildReturn(fb, ir.UnknownLoc)
	require.NoError(t, ir.Verify(mod.Operation))

	body.Terminator().Erase()
	err := ir.Verify(mod.Operation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects the body to end with 'value.module_terminator'")
}

func buildOffsetGlobal(b *ir.Builder) GlobalOp {
	d := mma.Describe(mma.M32xN32xK8B1)
	buffer, _ := d.ThreadOffsetMapTypes(ir.UI8)
	return BuildGlobal(b, ir.UnknownLoc, buffer, true, "offsets", d.OffsetMapAttr(ir.UI8), ir.GPUPrivateAddressSpace, false)
}

func TestBuildGlobal(t *testing.T) {
	b := newBuilder(t)
	mod := BuildModule(b, ir.UnknownLoc, "m")
	mod.SetInsertionPointToBody(b)
	g := buildOffsetGlobal(b)

	assert.Equal(t, "offsets", g.SymName())
	assert.True(t, g.IsConstant())
	assert.False(t, g.IsExternal())
	assert.Equal(t, ir.GPUPrivateAddressSpace, g.AddrSpace())
	assert.Equal(t, "memref<16x2xui8, 5>", g.Type().String())
	require.IsType(t, ir.DenseIntAttr{}, g.InitialValue())
	require.NoError(t, ir.Verify(mod.Operation))

	ext := BuildGlobal(b, ir.UnknownLoc, ir.NewMemRef(layout.Shape{4}, ir.F32), false, "table", nil, 0, true)
	assert.True(t, ext.IsExternal())
	assert.Nil(t, ext.InitialValue())
	assert.False(t, ext.HasAttr(AddrSpaceAttrName))
	assert.Equal(t, 0, ext.AddrSpace())
	assert.True(t, g.HasAttr(AddrSpaceAttrName))

	g.SetAttr(ValueAttrName, ir.DenseIntAttr{Type: ir.TensorType{Shape: layout.Shape{4}, Elem: ir.UI8}, Values: []int64{1, 2, 3, 4}})
	err := ir.Verify(mod.Operation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial value has 4 elements")
}

func TestReferenceGlobalResolvesThroughScopes(t *testing.T) {
	b, mod, f := kernel(t)

	gb := ir.NewBuilder(b.Context())
	gb.SetInsertionPoint(f.Operation)
	g := buildOffsetGlobal(gb)

	ref := BuildReferenceGlobal(b, ir.UnknownLoc, g)
	assert.Equal(t, "offsets", ref.GlobalName())
	assert.True(t, ref.Result(0).Type().Equal(g.Type()))

	found, ok := ref.Global()
	require.True(t, ok)
	assert.Same(t, g.Operation, found.Operation)

	found, ok = ref.GlobalIn(mod.SymbolTable())
	require.True(t, ok)
	assert.Same(t, g.Operation, found.Operation)

	require.NoError(t, ir.Verify(mod.Operation))

	ref.SetAttr(GlobalNameAttrName, ir.SymbolRefAttr("missing"))
	_, ok = ref.Global()
	assert.False(t, ok)
	err := ir.Verify(mod.Operation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'@missing' does not reference a valid global")
}

func TestReferenceGlobalOutsideScopePanics(t *testing.T) {
	b := newBuilder(t)
	g := buildOffsetGlobal(b)
	ref := BuildReferenceGlobal(b, ir.UnknownLoc, g)

	assert.Panics(t, func() { ref.Global() })

	st := ir.NewSymbolTable(BuildModule(b, ir.UnknownLoc, "empty").Operation)
	_, ok := ref.GlobalIn(st)
	assert.False(t, ok)
}

func TestCallVerification(t *testing.T) {
	b, mod, f := kernel(t, ir.F32)
	arg := f.EntryBlock().Argument(0)

	cb := ir.NewBuilder(b.Context())
	cb.SetInsertionPoint(f.Operation)
	callee := BuildExternalFunc(cb, ir.UnknownLoc, "sqrt", ir.NewFunctionType([]ir.Type{ir.F32}, []ir.Type{ir.F32}), TargetGPU)

	call := BuildCallFunc(b, ir.UnknownLoc, callee, arg)
	assert.Equal(t, "sqrt", call.Callee())
	assert.True(t, call.CalleeType().Equal(callee.Type()))
	require.NoError(t, ir.Verify(mod.Operation))

	BuildCall(b, ir.UnknownLoc, "sqrt", []ir.Type{ir.F64}, arg)
	BuildCall(b, ir.UnknownLoc, "cbrt", []ir.Type{ir.F32}, arg)

	err := ir.Verify(mod.Operation)
	require.Error(t, err)
	diags, ok := err.(ir.Diagnostics)
	require.True(t, ok)
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "does not match callee '@sqrt'")
	assert.Contains(t, diags[1].Message, "'@cbrt' does not reference a valid function")
}

func TestCallLambdaInEnclosingFunction(t *testing.T) {
	b, mod, _ := kernel(t)
	l := BuildLambda(b, ir.UnknownLoc, "inner", ir.NewFunctionType(nil, nil), TargetGPU)
	lb := ir.NewBuilder(b.Context())
	lb.SetInsertionPointToEnd(l.EntryBlock())
	BuildReturn(lb, ir.UnknownLoc)

	BuildCall(b, ir.UnknownLoc, "inner", nil)
	require.NoError(t, ir.Verify(mod.Operation))
}

func TestGlobalRejectsEmptyDimensions(t *testing.T) {
	b := newBuilder(t)
	mod := BuildModule(b, ir.UnknownLoc, "m")
	mod.SetInsertionPointToBody(b)
	BuildGlobal(b, ir.UnknownLoc, ir.NewMemRef(layout.Shape{4, 0}, ir.F32), false, "empty", nil, 0, false)

	err := ir.Verify(mod.Operation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension 1 is 0")
	assert.True(t, errors.Is(err, ir.ErrVerification))
}
