// Package compiler lowers an *ast.Program into a compiled *module.Module:
// bytecode for pkg/vm's stack machine, a symbol table, a global table, and
// the static-string/constant pools pkg/vm's opcodes address.
//
// Teacher's own pkg/compiler is an unimplemented stub (its compiler.go is
// a Phase-2 TODO placeholder); its compiler_test.go is what actually
// records the intended shape — a constant pool with AddConstant/
// GetConstant, an Emit/EmitWithLine instruction builder, and instruction
// patching. That file is this package's grounding for naming and overall
// shape (constant interning, line-tagged emission, forward-jump
// patching); the instruction *encoding* instead follows spec.md §4.6's
// fixed-width opcode stream already implemented in pkg/vm, since the
// teacher's three-operand Zend-style temp-var format has no equivalent in
// this spec's stack machine.
package compiler

import (
	"encoding/binary"

	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/scope"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// Resolver compiles (or fetches an already-compiled) module for an
// import's path string, relative to the importing module. pkg/runner
// supplies this so pkg/compiler never touches the filesystem or
// pkg/lexer/pkg/parser directly.
type Resolver func(path string) (*module.Module, error)

// Options configures one Compile call.
type Options struct {
	// Resolve handles `import "path" as alias;`. Nil rejects any import.
	Resolve Resolver
	// Globals pre-declares native-module names as immutable, public
	// globals before compiling Stmts — pkg/natives' bound modules (io,
	// math, os, time, random, hash) are wired in this way so ordinary
	// GGET/ACCESS opcodes reach them like any import.
	Globals []string
	// NativeFns pre-declares bare top-level native function names (e.g.
	// "print", "exit") resolved through OP_NGET against vm.VM.Natives
	// rather than through a global slot — spec.md §4.6's NGET opcode.
	NativeFns []string
}

// compiler holds one Compile call's mutable state.
type compiler struct {
	mod     *module.Module
	scope   *scope.Manager
	opts    Options
	fnDepth int
	loops   []*loopCtx
}

// loopCtx tracks the patch points a break/continue inside the innermost
// While/For loop needs — mirrors the teacher's ReplaceInstruction/jump-
// patch approach, generalized to a stack of pending relative-jump
// positions resolved once the loop's bytecode shape is fully known.
type loopCtx struct {
	continueTarget int
	continueJumps  []int
	breakJumps     []int
}

// Compile lowers prog into a fresh, original Module named name at
// pathname. opts.Resolve is consulted for every top-level import
// statement encountered.
func Compile(prog *ast.Program, name, pathname string, opts Options) (*module.Module, error) {
	mod := module.New(name, pathname)
	c := &compiler{mod: mod, scope: scope.New(), opts: opts}
	defer c.scope.Arena().Release()

	for _, g := range opts.Globals {
		mod.DefineGlobal(g, false, true)
		c.scope.DeclareGlobal(g, false, true)
	}
	for _, nf := range opts.NativeFns {
		c.scope.DeclareNativeFn(nf, -1)
	}

	e := newEmitter()
	for _, stmt := range prog.Stmts {
		if err := c.compileStmt(e, stmt); err != nil {
			return nil, err
		}
	}

	e.op(vm.OpHlt, 0)
	numLocals := c.scope.CurrentFnLocalCount() - 1
	entryFn := &types.Fn{Name: "<main>", Arity: 0, NumLocals: numLocals, Code: e.code, Lines: e.lines, Module: mod}
	mod.Entry = types.NewFnObj(entryFn)
	return mod, nil
}

// ---- bytecode emitter ----

// emitter accumulates one function body's bytecode and parallel line
// table (types.Fn.Code/Lines — spec.md §4.5, "per-opcode source-line
// table").
type emitter struct {
	code  []byte
	lines []int
}

func newEmitter() *emitter { return &emitter{} }

// op emits a bare opcode (no operand) and returns its position.
func (e *emitter) op(o vm.Op, line int) int {
	pos := len(e.code)
	e.code = append(e.code, byte(o))
	e.lines = append(e.lines, line)
	return pos
}

func (e *emitter) u8(v uint8) {
	e.code = append(e.code, v)
	e.lines = append(e.lines, 0)
}

func (e *emitter) i16(v int16) {
	e.code = append(e.code, 0, 0)
	binary.LittleEndian.PutUint16(e.code[len(e.code)-2:], uint16(v))
	e.lines = append(e.lines, 0, 0)
}

func (e *emitter) u16(v uint16) {
	e.code = append(e.code, 0, 0)
	binary.LittleEndian.PutUint16(e.code[len(e.code)-2:], v)
	e.lines = append(e.lines, 0, 0)
}

func (e *emitter) i32(v int32) {
	e.code = append(e.code, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(e.code[len(e.code)-4:], uint32(v))
	e.lines = append(e.lines, 0, 0, 0, 0)
}

// opU8/opI16/opU16/opI32 emit an opcode plus its fixed-width operand.
func (e *emitter) opU8(o vm.Op, line int, v uint8) int {
	pos := e.op(o, line)
	e.u8(v)
	return pos
}

func (e *emitter) opI16(o vm.Op, line int, v int16) int {
	pos := e.op(o, line)
	e.i16(v)
	return pos
}

func (e *emitter) opU16(o vm.Op, line int, v uint16) int {
	pos := e.op(o, line)
	e.u16(v)
	return pos
}

func (e *emitter) opI32(o vm.Op, line int, v int32) int {
	pos := e.op(o, line)
	e.i32(v)
	return pos
}

// jump emits a forward-unresolved i16-relative-offset opcode (JMP/JIF/
// JIT/TRYO), to be fixed up by patchJump once its target is known.
func (e *emitter) jump(o vm.Op, line int) int {
	return e.opI16(o, line, 0)
}

// patchJump rewrites the jump at pos to land at the bytecode's current
// end — spec.md §4.6's jump offsets are relative to the byte just past
// the i16 operand.
func (e *emitter) patchJump(pos int) {
	e.patchJumpTo(pos, len(e.code))
}

func (e *emitter) patchJumpTo(pos, target int) {
	opStart := pos + 1
	offset := int16(target - opStart - 2)
	binary.LittleEndian.PutUint16(e.code[opStart:opStart+2], uint16(offset))
}

// jumpBackTo emits a jump whose target is already known (a loop's back
// edge to its condition check).
func (e *emitter) jumpBackTo(o vm.Op, line, target int) {
	pos := e.opI16(o, line, 0)
	e.patchJumpTo(pos, target)
}

func (e *emitter) here() int { return len(e.code) }

// ---- shared lookup helpers ----

func (c *compiler) internStr(s string) int16 { return int16(c.mod.InternStaticStr(s)) }

func (c *compiler) inGlobalScope() bool { return c.fnDepth == 0 }
