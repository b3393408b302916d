package lower

import (
	"fmt"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/roach88/choc/internal/ast"
)

// builder owns the basic blocks of one function under construction.
// It tracks a single insertion point and enforces the block contract:
// every instruction lands in an open block, and every block receives
// exactly one terminator. Both halves of that contract are defects
// when violated, so the guards panic via ice rather than return errors.
type builder struct {
	fn     *llir.Func
	cur    *llir.Block
	labels map[string]int
}

// newBuilder creates the entry block and positions the insertion
// point there.
func newBuilder(fn *llir.Func) *builder {
	b := &builder{fn: fn, labels: make(map[string]int)}
	b.cur = fn.NewBlock("entry")
	return b
}

// newBlock appends a fresh block without moving the insertion point.
// Labels are made unique per function by a per-prefix counter, so two
// if statements yield if.then.0 and if.then.1.
func (b *builder) newBlock(prefix string) *llir.Block {
	n := b.labels[prefix]
	b.labels[prefix] = n + 1
	return b.fn.NewBlock(fmt.Sprintf("%s.%d", prefix, n))
}

// setInsert moves the insertion point to blk.
func (b *builder) setInsert(blk *llir.Block) {
	b.cur = blk
}

// block returns the current insertion block. Expression lowering uses
// this to record which block a value was produced in, since lowering a
// subexpression can move the insertion point.
func (b *builder) block() *llir.Block {
	return b.cur
}

// terminated reports whether the current block already has a
// terminator, meaning no further instruction may be appended.
func (b *builder) terminated() bool {
	return b.cur.Term != nil
}

func (b *builder) open(op string, node ast.Node) *llir.Block {
	if b.cur.Term != nil {
		ice(op, node, "emit into terminated block %s", b.cur.LocalIdent.Ident())
	}
	return b.cur
}

// Terminators.

func (b *builder) br(target *llir.Block, node ast.Node) {
	b.open("br", node).NewBr(target)
}

func (b *builder) condBr(cond value.Value, then, els *llir.Block, node ast.Node) {
	b.open("condbr", node).NewCondBr(cond, then, els)
}

func (b *builder) ret(v value.Value, node ast.Node) {
	b.open("ret", node).NewRet(v)
}

func (b *builder) retVoid(node ast.Node) {
	b.open("ret", node).NewRet(nil)
}

// Instructions. Each wrapper checks the open-block invariant before
// delegating to the underlying block.

func (b *builder) alloca(t lltypes.Type, node ast.Node) *llir.InstAlloca {
	return b.open("alloca", node).NewAlloca(t)
}

func (b *builder) load(t lltypes.Type, ptr value.Value, node ast.Node) value.Value {
	return b.open("load", node).NewLoad(t, ptr)
}

func (b *builder) store(v, ptr value.Value, node ast.Node) {
	b.open("store", node).NewStore(v, ptr)
}

func (b *builder) add(x, y value.Value, node ast.Node) value.Value {
	return b.open("add", node).NewAdd(x, y)
}

func (b *builder) sub(x, y value.Value, node ast.Node) value.Value {
	return b.open("sub", node).NewSub(x, y)
}

func (b *builder) mul(x, y value.Value, node ast.Node) value.Value {
	return b.open("mul", node).NewMul(x, y)
}

func (b *builder) sdiv(x, y value.Value, node ast.Node) value.Value {
	return b.open("sdiv", node).NewSDiv(x, y)
}

func (b *builder) srem(x, y value.Value, node ast.Node) value.Value {
	return b.open("srem", node).NewSRem(x, y)
}

func (b *builder) icmp(pred enum.IPred, x, y value.Value, node ast.Node) value.Value {
	return b.open("icmp", node).NewICmp(pred, x, y)
}

func (b *builder) xor(x, y value.Value, node ast.Node) value.Value {
	return b.open("xor", node).NewXor(x, y)
}

func (b *builder) zext(v value.Value, t lltypes.Type, node ast.Node) value.Value {
	return b.open("zext", node).NewZExt(v, t)
}

func (b *builder) call(callee value.Value, node ast.Node, args ...value.Value) value.Value {
	return b.open("call", node).NewCall(callee, args...)
}

func (b *builder) phi(node ast.Node, incs ...*llir.Incoming) value.Value {
	return b.open("phi", node).NewPhi(incs...)
}
