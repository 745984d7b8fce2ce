package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/krizos/zs/pkg/heap"
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
)

// maxStack is spec.md §4.7's "value stack (fixed, ~65 025 slots)" —
// 255*255, the product of the compiler's MaxLocals and max-call-depth
// bounds.
const maxStack = 255 * 255

// maxFrames is spec.md §4.7's "frame stack (fixed, 255 entries)".
const maxFrames = 255

// excFrame is one entry of the exception stack — spec.md §3's
// Exception{catch_ip, saved_stack_top, saved_frame, throw_value, prev}.
// prev's linked-list role is played here by excFrame simply being an
// element of VM.exc, a plain slice.
type excFrame struct {
	catchIP    int
	stackTop   int
	frameDepth int
}

// VM is the stack-based bytecode interpreter — spec.md §4.7.
type VM struct {
	heap *heap.Heap

	operand []types.Value
	frames  []*Frame
	exc     []excFrame

	root *module.Module

	// Natives holds top-level native-function bindings resolved by NGET —
	// spec.md §4.10's "module members via global symbols", for symbols a
	// script can call without a receiver (print, exit). Bound native
	// modules (io.*, math.*, ...) live as ordinary globals pointing at
	// KindNativeModule objects instead.
	Natives map[string]*types.Obj

	Stdout io.Writer
	Stderr io.Writer

	// Args holds the script's command-line arguments (argv[2:], the source
	// path itself excluded) — pkg/natives' os module exposes these as
	// os.args() (spec.md §6's CLI invocation, "<program> <source-path>").
	Args []string

	exitCode int
	halted   bool
}

// New creates a VM bound to root (the program's entry module) and ready to
// execute. Natives should be populated (via Bind) before Run is called.
func New(root *module.Module) *VM {
	return newVM(root, heap.New())
}

// NewWithGCThreshold is New with the GC's starting byte threshold
// overridden — pkg/runner wires this to a CLI flag, since spec.md §4.1's
// 32 MiB default is a starting point, not a hard requirement.
func NewWithGCThreshold(root *module.Module, threshold int) *VM {
	return newVM(root, heap.NewWithThreshold(threshold))
}

func newVM(root *module.Module, h *heap.Heap) *VM {
	return &VM{
		heap:    h,
		operand: make([]types.Value, 0, 1024),
		frames:  make([]*Frame, 0, 32),
		root:    root,
		Natives: make(map[string]*types.Obj),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Bind registers a top-level native function resolvable by NGET.
func (vm *VM) Bind(name string, fn *types.Obj) { vm.Natives[name] = fn }

// SetRoot attaches the program's entry module after natives have already
// been bound and every module (root and imports) compiled — the CLI driver
// builds the native catalog against a VM before any source exists to
// compile, so root can only be known once compilation finishes.
func (vm *VM) SetRoot(root *module.Module) { vm.root = root }

// Heap exposes the VM's GC-tracked heap, e.g. for natives that allocate
// their own Str/Record objects (pkg/natives).
func (vm *VM) Heap() *heap.Heap { return vm.heap }

// Track wires a freshly built Obj into this VM's heap, running the
// allocation's GC check first — the public counterpart of track, for
// pkg/natives building Array/List/Dict/Record/Str objects to return from a
// native call without reaching into VM internals.
func (vm *VM) Track(o *types.Obj) *types.Obj { return vm.track(o) }

// fault is the unified representation of everything spec.md §7 can raise
// mid-dispatch: a script-level throw, an opcode-raised user error, or a
// fatal internal-invariant violation. Value is always populated (even for
// fatals, so a stack trace can quote it); Fatal marks the conditions §7
// says must skip straight to process exit instead of offering a try an
// unwind target.
type fault struct {
	Value   types.Value
	Fatal   bool
	Message string
	Trace   []traceEntry
}

type traceEntry struct {
	File, Function string
	Line           int
}

func (f *fault) Error() string { return f.Message }

// errHalt is the sentinel OpHlt returns to unwind straight out of Run.
var errHalt = fmt.Errorf("vm: halt")

// userErrorf builds a catchable tier-2 user error (spec.md §7.2): wrong
// type, out-of-bounds, arity mismatch, divide by zero, missing key.
func (vm *VM) userErrorf(frame *Frame, format string, a ...any) *fault {
	msg := fmt.Sprintf(format, a...)
	rec := types.NewRecordObj(map[string]types.Value{
		"msg": types.NewObj(vm.heap.AllocStr(msg)),
	})
	vm.heap.Track(rec, heap.Size(rec))
	return &fault{Value: types.NewObj(rec), Message: msg, Trace: vm.captureTrace(frame)}
}

// fatalf builds a tier-2-formatted fault marked Fatal: an internal
// invariant violation (stack/frame overflow, corrupt opcode, corrupt
// symbol index) that always terminates instead of offering an unwind
// target to a try, per spec.md §7's "Fatal internal invariants ... use the
// tier-2 path ... then clean up and exit."
func (vm *VM) fatalf(frame *Frame, format string, a ...any) *fault {
	msg := "internal error: " + fmt.Sprintf(format, a...)
	return &fault{Fatal: true, Message: msg, Trace: vm.captureTrace(frame)}
}

// scriptThrow wraps an explicit `throw value;` — spec.md §7.3/§4.7: if v is
// a Record with a string `msg` attribute, that string becomes the
// human-readable reason shown if the throw escapes uncaught.
func (vm *VM) scriptThrow(frame *Frame, v types.Value) *fault {
	msg := v.String()
	if v.IsObjKind(types.KindRecord) {
		if m, ok := v.AsObj().AsRecord().Get("msg"); ok && m.IsObjKind(types.KindStr) {
			msg = m.AsObj().AsStr().String()
		}
	}
	return &fault{Value: v, Message: msg, Trace: vm.captureTrace(frame)}
}

func (vm *VM) captureTrace(frame *Frame) []traceEntry {
	trace := make([]traceEntry, 0, len(vm.frames))
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := vm.frames[i]
		line := 0
		if fr.LastOffset < len(fr.Fn.Lines) {
			line = fr.Fn.Lines[fr.LastOffset]
		}
		trace = append(trace, traceEntry{Function: fr.Fn.Name, Line: line})
	}
	_ = frame
	return trace
}

// ---- operand stack ----

// push returns error (not *fault) so that `return vm.push(...)` from a
// handler whose own signature is `error` never wraps a nil *fault into a
// non-nil error interface value.
func (vm *VM) push(frame *Frame, v types.Value) error {
	if len(vm.operand) >= maxStack {
		return vm.fatalf(frame, "value stack overflow")
	}
	vm.operand = append(vm.operand, v)
	return nil
}

func (vm *VM) pop() types.Value {
	n := len(vm.operand) - 1
	v := vm.operand[n]
	vm.operand = vm.operand[:n]
	return v
}

func (vm *VM) peek(fromTop int) types.Value {
	return vm.operand[len(vm.operand)-1-fromTop]
}

// ---- GC wiring ----

// collectRoots implements heap.RootFn over every Value this VM currently
// holds live — spec.md §4.9's three root groups.
func (vm *VM) collectRoots(visit func(types.Value)) {
	for _, v := range vm.operand {
		visit(v)
	}
	for _, fr := range vm.frames {
		for _, l := range fr.Locals {
			visit(l)
		}
		if fr.Closure != nil {
			for _, out := range fr.Closure.Outs {
				visit(out.Value)
			}
		}
	}
	if vm.root != nil {
		for _, g := range vm.root.Sub().Globals {
			visit(g.Value)
		}
	}
}

func (vm *VM) maybeGC(pendingBytes int) {
	vm.heap.MaybeCollect(pendingBytes, vm.collectRoots)
}

// track wires a freshly built Obj into the heap after a GC check, per
// spec.md §4.1: "the VM triggers a GC cycle before the allocation
// proceeds."
func (vm *VM) track(o *types.Obj) *types.Obj {
	size := heap.Size(o)
	vm.maybeGC(size)
	return vm.heap.Track(o, size)
}

// ---- top-level execution envelope (spec.md §4.8) ----

// Run pushes the root module's entry function and executes it to
// completion, returning the process exit code.
func (vm *VM) Run() (int, error) {
	entryFn := vm.root.Entry.AsFn()
	vm.frames = append(vm.frames, NewFrame(entryFn, nil, 0, nil, vm.root.Entry))
	vm.root.MarkResolved()

	code, err := vm.dispatch()
	if err == nil {
		return code, nil
	}
	f, ok := err.(*fault)
	if !ok {
		return 1, err
	}
	vm.printUncaught(f)
	return 1, f
}

func (vm *VM) printUncaught(f *fault) {
	fmt.Fprintf(vm.Stderr, "error: %s\n", f.Message)
	for _, t := range f.Trace {
		fmt.Fprintf(vm.Stderr, "  at %s (line %d)\n", t.Function, t.Line)
	}
}

// dispatch is the tight decode-execute loop — spec.md §4.7. A fault
// raised by any opcode handler either finds an active try (exc non-empty)
// and resumes in place, or — if none exists or the fault is Fatal — ends
// dispatch and bubbles to Run.
func (vm *VM) dispatch() (int, error) {
	for {
		if len(vm.frames) == 0 {
			return 0, nil
		}
		frame := vm.frames[len(vm.frames)-1]

		if frame.IP >= len(frame.Fn.Code) {
			// Fell off the end of a function body without an explicit
			// RET: implicit Empty return.
			vm.returnFromFrame(types.Empty)
			continue
		}

		op := Op(frame.Fn.Code[frame.IP])
		frame.LastOffset = frame.IP
		frame.IP++
		opStart := frame.IP
		frame.IP += operandSize(op)

		err := vm.exec(frame, op, opStart)
		if err == nil {
			continue
		}
		if err == errHalt {
			return vm.exitCode, nil
		}
		f, ok := err.(*fault)
		if !ok {
			return 1, err
		}
		if f.Fatal || len(vm.exc) == 0 {
			return 1, f
		}
		vm.unwind(f)
	}
}

// unwind resumes dispatch at the innermost active try's catch IP —
// spec.md §4.8 outcome 2: pop the top exception, restore its saved frame
// depth and stack top, push the thrown/fault value, and let the loop
// continue from there.
func (vm *VM) unwind(f *fault) {
	n := len(vm.exc) - 1
	ef := vm.exc[n]
	vm.exc = vm.exc[:n]

	vm.frames = vm.frames[:ef.frameDepth]
	vm.operand = vm.operand[:ef.stackTop]

	frame := vm.frames[len(vm.frames)-1]
	frame.IP = ef.catchIP
	vm.operand = append(vm.operand, f.Value)
}

// returnFromFrame implements RET's frame-pop half, shared with the
// implicit-return fallthrough above: pop the current frame and push its
// result onto the (now current) caller's operand stack. An empty frame
// stack after the pop means the program's entry function has returned,
// ending execution normally.
func (vm *VM) returnFromFrame(result types.Value) {
	vm.frames = vm.frames[:len(vm.frames)-1]
	if len(vm.frames) > 0 {
		vm.operand = append(vm.operand, result)
	}
}
