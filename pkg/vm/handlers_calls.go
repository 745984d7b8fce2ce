package vm

import "github.com/krizos/zs/pkg/types"

// execCall implements OP_CALL (spec.md §4.6/§4.8): pop argc arguments
// (pushed by the compiler in left-to-right order, so the top of stack is
// the last argument) and the callee beneath them, then dispatch on the
// callee's kind.
func (vm *VM) execCall(frame *Frame, code []byte, opStart int) error {
	argc := int(readU8(code, opStart))
	if len(vm.operand) < argc+1 {
		return vm.fatalf(frame, "value stack underflow on call")
	}
	args := make([]types.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = vm.pop()
	}
	callee := vm.pop()
	return vm.call(frame, callee, args)
}

// call invokes callee with args, from the calling frame. A NativeFn runs
// to completion inline (Go already gives it a call stack); a Fn/Closure
// instead pushes a new Frame and lets dispatch's loop run its body.
func (vm *VM) call(frame *Frame, callee types.Value, args []types.Value) error {
	if !callee.IsObj() {
		return vm.userErrorf(frame, "cannot call a %s", kindName(callee))
	}
	switch callee.AsObj().Kind {
	case types.KindNativeFn:
		return vm.callNative(frame, callee.AsObj().AsNativeFn(), args)
	case types.KindFn:
		return vm.callFn(frame, callee.AsObj().AsFn(), nil, args, callee)
	case types.KindClosure:
		cl := callee.AsObj().AsClosure()
		return vm.callFn(frame, cl.Meta.Fn, cl, args, callee)
	case types.KindForeignFn:
		return vm.callForeign(frame, callee.AsObj().AsForeignFn(), args)
	default:
		return vm.userErrorf(frame, "cannot call a %s", callee.AsObj().Kind)
	}
}

func (vm *VM) callNative(frame *Frame, nf *types.NativeFn, args []types.Value) error {
	if int(nf.Arity) != len(args) {
		return vm.userErrorf(frame, "%s expects %d argument(s), got %d", nf.Name, nf.Arity, len(args))
	}
	result, err := nf.Func(args, nf.Target, vm)
	if err != nil {
		return vm.userErrorf(frame, "%s: %s", nf.Name, err)
	}
	return vm.push(frame, result)
}

func (vm *VM) callForeign(frame *Frame, ff *types.ForeignFn, args []types.Value) error {
	result, err := ff.Func(args)
	if err != nil {
		return vm.userErrorf(frame, "%s: %s", ff.Name, err)
	}
	return vm.push(frame, result)
}

func (vm *VM) callFn(caller *Frame, fn *types.Fn, closure *types.Closure, args []types.Value, callee types.Value) error {
	if int(fn.Arity) != len(args) {
		return vm.userErrorf(caller, "%s expects %d argument(s), got %d", fn.Name, fn.Arity, len(args))
	}
	if len(vm.frames) >= maxFrames {
		return vm.fatalf(caller, "call stack overflow calling %s", fn.Name)
	}
	vm.frames = append(vm.frames, NewFrame(fn, closure, fn.NumLocals, args, callee))
	return nil
}
