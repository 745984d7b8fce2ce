package vm

import "github.com/krizos/zs/pkg/types"

// Frame is one call's activation record — spec.md §3's
// "{ip, last_offset, fn, closure?, locals_base, out_values_head/tail}".
//
// Unlike the spec's C implementation, Locals is this Frame's own array
// rather than a window (`locals_base`) into the shared value stack: Go
// gives every Frame its own backing slice for free, so there is no reason
// to interleave locals with the operand stack's expression temporaries on
// one array the way the C VM does to save an allocation. The externally
// visible addressing scheme is unchanged — Locals[0] is the callable
// itself, Locals[1..=Arity] are the arguments, the rest are the
// compiler-assigned local slots (spec.md §3 invariant 4) — only the
// physical storage differs. Grounded on teacher's pkg/vm/frame.go
// (`ip`, `fn`, `locals` fields) for the shape, generalized to this spec's
// closure/out-value handling.
//
// out_values_head/tail from spec.md §3 do not appear here: this VM
// resolves the closure-capture Open Question as capture-by-value at
// closure creation (DESIGN.md §9), so a captured OutValue's Value is
// copied once when the Closure is built (execSGet in handlers_variables.go) and never
// aliases its defining frame's slot afterward — there is nothing left for
// a frame-owned out-value chain to do at pop time. types.OutValue keeps
// Linked/Prev/Next for field-for-field fidelity with spec.md §3, but this
// VM never links one into a frame's chain.
type Frame struct {
	IP         int
	LastOffset int
	Fn         *types.Fn
	Closure    *types.Closure // nil unless this call is through a Closure
	Locals     []types.Value
}

// NewFrame builds a Frame ready to execute fn, with numLocals slots beyond
// the callee+arguments region pre-zeroed to Empty.
func NewFrame(fn *types.Fn, closure *types.Closure, numLocals int, args []types.Value, callee types.Value) *Frame {
	locals := make([]types.Value, 1+len(args)+numLocals)
	locals[0] = callee
	copy(locals[1:], args)
	return &Frame{Fn: fn, Closure: closure, Locals: locals}
}
