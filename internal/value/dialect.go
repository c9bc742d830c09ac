package value

import (
	"io"
	"sort"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

// Namespace is the prefix of every operation and type of the dialect.
const Namespace = "value"

// Operation names.
const (
	FuncOpName             = "value.func"
	LambdaOpName           = "value.lambda"
	ModuleOpName           = "value.module"
	ModuleTerminatorOpName = "value.module_terminator"
	GlobalOpName           = "value.global"
	ReferenceGlobalOpName  = "value.ref_global"
	CallOpName             = "value.call"
	ReturnOpName           = "value.return"
	YieldOpName            = "value.yield"
	ConstantOpName         = "value.constant"
	CastOpName             = "value.cast"
	GetElementOpName       = "value.get_element"
	ReorderOpName          = "value.reorder"
	ReduceOpName           = "value.reduce"
	MapReduceOpName        = "value.map_reduce"
	CmpOpName              = "value.cmp"
	BinOpName              = "value.bin_op"
	UnaryOpName            = "value.unary_op"
	MMAComputeSyncOpName   = "value.mma_compute_sync"
	MMAFillSyncOpName      = "value.mma_fill_sync"
	MMALoadSyncOpName      = "value.mma_load_sync"
	MMAStoreSyncOpName     = "value.mma_store_sync"
	GPUBlockCacheOpName    = "value.gpu_block_cache"
)

// Attribute names.
const (
	FunctionTypeAttrName  = "function_type"
	ExecTargetAttrName    = "exec_target"
	ExternalAttrName      = "external"
	ArgAttrsAttrName      = "arg_attrs"
	TypeAttrName          = "type"
	ConstantAttrName      = "constant"
	ValueAttrName         = "value"
	AddrSpaceAttrName     = "addr_space"
	GlobalNameAttrName    = "global_name"
	CalleeAttrName        = "callee"
	OrderAttrName         = "order"
	PredicateAttrName     = "predicate"
	MMAShapeAttrName      = "mma_shape"
	OperandTypeAttrName   = "operand_type"
	TileShapeAttrName     = "tile_shape"
	WorkPerThreadAttrName = "work_per_thread"
	VecWidthAttrName      = "vec_width"
	DstRowMajorAttrName   = "dst_row_major"
	CBSZAttrName          = "cbsz"
	ABIDAttrName          = "abid"
	BLGPAttrName          = "blgp"
)

// Dialect implements ir.Dialect for the value dialect.
type Dialect struct {
	ops []string
}

var _ ir.Dialect = (*Dialect)(nil)

// Register adds the dialect and its whole operation catalog to ctx and returns the dialect.
func Register(ctx *ir.Context) *Dialect {
	d := &Dialect{}
	ctx.RegisterDialect(d)

	d.registerFunctionOps(ctx)
	d.registerMemoryOps(ctx)
	d.registerComputeOps(ctx)
	d.registerMMAOps(ctx)

	sort.Strings(d.ops)
	klog.V(2).Infof("value: registered %d operations", len(d.ops))
	return d
}

func (d *Dialect) register(ctx *ir.Context, info ir.OpInfo) {
	info.Dialect = d
	ctx.RegisterOp(info)
	d.ops = append(d.ops, info.Name)
}

func (d *Dialect) registerFunctionOps(ctx *ir.Context) {
	funcTraits := ir.TraitSymbol | ir.TraitFunctionLike | ir.TraitCallable | ir.TraitIsolatedFromAbove
	d.register(ctx, ir.OpInfo{Name: FuncOpName, Traits: funcTraits, Regions: 1, Verify: verifyFunc})
	d.register(ctx, ir.OpInfo{Name: LambdaOpName, Traits: funcTraits, Regions: 1, Verify: verifyLambda})
	d.register(ctx, ir.OpInfo{
		Name:    ModuleOpName,
		Traits:  ir.TraitSymbol | ir.TraitSymbolTable | ir.TraitIsolatedFromAbove | ir.TraitSingleBlock,
		Regions: 1,
		Verify:  verifyModule,
	})
	d.register(ctx, ir.OpInfo{Name: ModuleTerminatorOpName, Traits: ir.TraitTerminator})
	d.register(ctx, ir.OpInfo{Name: CallOpName, Verify: verifyCall})
	d.register(ctx, ir.OpInfo{Name: ReturnOpName, Traits: ir.TraitTerminator | ir.TraitPure, Verify: verifyReturn})
	d.register(ctx, ir.OpInfo{Name: YieldOpName, Traits: ir.TraitTerminator | ir.TraitPure})
}

func (d *Dialect) registerMemoryOps(ctx *ir.Context) {
	d.register(ctx, ir.OpInfo{Name: GlobalOpName, Traits: ir.TraitSymbol, Verify: verifyGlobal})
	d.register(ctx, ir.OpInfo{Name: ReferenceGlobalOpName, Traits: ir.TraitPure, Verify: verifyReferenceGlobal})
	d.register(ctx, ir.OpInfo{Name: ReorderOpName, Traits: ir.TraitPure, Verify: verifyReorder})
	d.register(ctx, ir.OpInfo{Name: GetElementOpName, Traits: ir.TraitPure, Fold: FoldGetElement})
}

func (d *Dialect) registerComputeOps(ctx *ir.Context) {
	d.register(ctx, ir.OpInfo{Name: ConstantOpName, Traits: ir.TraitPure, Fold: foldConstant})
	d.register(ctx, ir.OpInfo{Name: CastOpName, Traits: ir.TraitPure, Fold: FoldCast})
	d.register(ctx, ir.OpInfo{Name: CmpOpName, Traits: ir.TraitPure, Verify: verifySameOperandTypes})
	d.register(ctx, ir.OpInfo{Name: BinOpName, Traits: ir.TraitPure, Verify: verifySameOperandTypes})
	d.register(ctx, ir.OpInfo{Name: UnaryOpName, Traits: ir.TraitPure})
	d.register(ctx, ir.OpInfo{Name: ReduceOpName, Traits: ir.TraitSingleBlock, Regions: 1, Verify: verifyReduce})
	d.register(ctx, ir.OpInfo{Name: MapReduceOpName, Traits: ir.TraitSingleBlock, Regions: 2, Verify: verifyMapReduce})
}

func (d *Dialect) registerMMAOps(ctx *ir.Context) {
	d.register(ctx, ir.OpInfo{Name: MMAComputeSyncOpName, Verify: verifyMMAComputeSync})
	d.register(ctx, ir.OpInfo{Name: MMAFillSyncOpName, Verify: verifyMMAFillSync})
	d.register(ctx, ir.OpInfo{Name: MMALoadSyncOpName, Verify: verifyMMALoadSync})
	d.register(ctx, ir.OpInfo{Name: MMAStoreSyncOpName, Verify: verifyMMAStoreSync})
	d.register(ctx, ir.OpInfo{Name: GPUBlockCacheOpName, Verify: verifyGPUBlockCache})
}

// Namespace implements ir.Dialect.
func (d *Dialect) Namespace() string { return Namespace }

// Ops returns the sorted names of the operations registered by the dialect.
func (d *Dialect) Ops() []string {
	return append([]string(nil), d.ops...)
}

// ParseType implements ir.Dialect. The only type is "range".
func (d *Dialect) ParseType(p *ir.TypeParser) (ir.Type, error) {
	keyword, err := p.ParseKeyword()
	if err != nil {
		return nil, err
	}
	if keyword == rangeKeyword {
		return RangeType{}, nil
	}
	return nil, p.EmitError("unknown value type: %s", keyword)
}

// PrintType implements ir.Dialect. Types of other dialects are a programming error.
func (d *Dialect) PrintType(t ir.Type, w io.Writer) {
	switch t.(type) {
	case RangeType:
		_, _ = io.WriteString(w, rangeKeyword)
	default:
		exceptions.Panicf("unexpected 'value' type kind %T", t)
	}
}

// MaterializeConstant implements ir.Dialect: it creates a value.constant holding
// attr as a value of type t. Float literals are rounded to the precision of t.
func (d *Dialect) MaterializeConstant(b *ir.Builder, attr ir.Attribute, t ir.Type, loc ir.Location) *ir.Operation {
	return BuildConstant(b, loc, roundToType(attr, t), t).Operation
}

// roundToType converts numeric literals to the element type of t.
func roundToType(attr ir.Attribute, t ir.Type) ir.Attribute {
	elem, ok := ir.ElementTypeOf(t).(ir.ScalarType)
	if !ok {
		return attr
	}
	switch a := attr.(type) {
	case ir.FloatAttr:
		if elem.IsInteger() {
			return ir.IntegerAttr{Value: int64(a.Value), Type: elem}
		}
		return ir.FloatAttr{Value: roundFloat(a.Value, elem.DType), Type: elem}
	case ir.IntegerAttr:
		if elem.IsFloat() {
			return ir.FloatAttr{Value: roundFloat(float64(a.Value), elem.DType), Type: elem}
		}
		return ir.IntegerAttr{Value: a.Value, Type: elem}
	}
	return attr
}

func roundFloat(v float64, dt dtypes.DType) float64 {
	switch dt {
	case dtypes.Float16:
		return float64(float16.Fromfloat32(float32(v)).Float32())
	case dtypes.BFloat16:
		return float64(bfloat16.FromFloat32(float32(v)).Float32())
	case dtypes.Float32:
		return float64(float32(v))
	default:
		return v
	}
}
