package vm

import (
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
)

// execObject handles spec.md §4.6's Assign-into-container group (ASET,
// PUT) together with ACCESS/INDEX, the read-side counterparts used by
// plain `a.b` / `a[i]` expressions. ASET/PUT pop-and-discard the container
// reference and push the assigned *value* back, so assignment keeps
// working as an expression without a dedicated DUP opcode; ACCESS/INDEX
// instead leave the looked-up *element* on top and never touch the
// container's identity.
func (vm *VM) execObject(frame *Frame, op Op, code []byte, opStart int) error {
	switch op {
	case OpASet:
		return vm.execASet(frame)
	case OpPut:
		idx := int(readI16(code, opStart))
		return vm.execPut(frame, idx)
	case OpAccess:
		idx := int(readI16(code, opStart))
		return vm.execAccess(frame, idx)
	case OpIndex:
		return vm.execIndex(frame)
	}
	return vm.fatalf(frame, "unreachable object opcode %s", op)
}

func (vm *VM) execASet(frame *Frame) error {
	val := vm.pop()
	index := vm.pop()
	container := vm.pop()
	if !container.IsObj() {
		return vm.userErrorf(frame, "cannot index into a %s", kindName(container))
	}
	o := container.AsObj()
	switch o.Kind {
	case types.KindArray:
		i, ok := asIndex(index)
		if !ok {
			return vm.userErrorf(frame, "array index must be an int, got %s", kindName(index))
		}
		if err := o.AsArray().Set(i, val); err != nil {
			return vm.userErrorf(frame, "%s", err)
		}
	case types.KindList:
		i, ok := asIndex(index)
		if !ok {
			return vm.userErrorf(frame, "list index must be an int, got %s", kindName(index))
		}
		if err := o.AsList().Set(i, val); err != nil {
			return vm.userErrorf(frame, "%s", err)
		}
	case types.KindDict:
		o.AsDict().Set(index, val)
	default:
		return vm.userErrorf(frame, "cannot index into a %s", o.Kind)
	}
	return vm.push(frame, val)
}

func (vm *VM) execPut(frame *Frame, staticStrIdx int) error {
	val := vm.pop()
	container := vm.pop()
	mod := frame.Fn.Module.(*module.Module)
	name := mod.StaticStr(staticStrIdx).AsStr().String()
	if !container.IsObj() || container.AsObj().Kind != types.KindRecord {
		return vm.userErrorf(frame, "cannot assign field %q on a %s", name, kindName(container))
	}
	container.AsObj().AsRecord().Set(name, val)
	return vm.push(frame, val)
}

func (vm *VM) execAccess(frame *Frame, staticStrIdx int) error {
	recv := vm.pop()
	mod := frame.Fn.Module.(*module.Module)
	name := mod.StaticStr(staticStrIdx).AsStr().String()
	if !recv.IsObj() {
		return vm.userErrorf(frame, "cannot access field %q on a %s", name, kindName(recv))
	}
	switch recv.AsObj().Kind {
	case types.KindRecord:
		v, ok := recv.AsObj().AsRecord().Get(name)
		if !ok {
			return vm.userErrorf(frame, "record has no field %q", name)
		}
		return vm.push(frame, v)
	case types.KindModule:
		g, ok := module.AsModule(recv.AsObj()).Global(name)
		if !ok {
			return vm.userErrorf(frame, "module %q has no public member %q", module.AsModule(recv.AsObj()).Name, name)
		}
		if !g.Public {
			return vm.userErrorf(frame, "member %q of module %q is not public", name, module.AsModule(recv.AsObj()).Name)
		}
		return vm.push(frame, g.Value)
	case types.KindNativeModule:
		nm := module.AsNativeModule(recv.AsObj())
		fn, ok := nm.Lookup(name)
		if !ok {
			return vm.userErrorf(frame, "native module %q has no member %q", nm.Name, name)
		}
		return vm.push(frame, types.NewObj(fn))
	default:
		if bound, ok := lookupBuiltin(recv.AsObj().Kind, name, recv); ok {
			return vm.push(frame, types.NewObj(bound))
		}
		return vm.userErrorf(frame, "cannot access field %q on a %s", name, recv.AsObj().Kind)
	}
}

func (vm *VM) execIndex(frame *Frame) error {
	index := vm.pop()
	container := vm.pop()
	if !container.IsObj() {
		return vm.userErrorf(frame, "cannot index into a %s", kindName(container))
	}
	o := container.AsObj()
	switch o.Kind {
	case types.KindStr:
		i, ok := asIndex(index)
		if !ok {
			return vm.userErrorf(frame, "str index must be an int, got %s", kindName(index))
		}
		s := o.AsStr()
		if i < 0 || i >= s.Len() {
			return vm.userErrorf(frame, "str index %d out of range [0,%d)", i, s.Len())
		}
		ch := vm.track(types.NewStrObj(s.String()[i : i+1]))
		return vm.push(frame, types.NewObj(ch))
	case types.KindArray:
		i, ok := asIndex(index)
		if !ok {
			return vm.userErrorf(frame, "array index must be an int, got %s", kindName(index))
		}
		v, err := o.AsArray().Get(i)
		if err != nil {
			return vm.userErrorf(frame, "%s", err)
		}
		return vm.push(frame, v)
	case types.KindList:
		i, ok := asIndex(index)
		if !ok {
			return vm.userErrorf(frame, "list index must be an int, got %s", kindName(index))
		}
		v, err := o.AsList().Get(i)
		if err != nil {
			return vm.userErrorf(frame, "%s", err)
		}
		return vm.push(frame, v)
	case types.KindDict:
		v, ok := o.AsDict().Get(index)
		if !ok {
			return vm.userErrorf(frame, "dict has no such key")
		}
		return vm.push(frame, v)
	default:
		return vm.userErrorf(frame, "cannot index into a %s", o.Kind)
	}
}

func asIndex(v types.Value) (int, bool) {
	if !v.IsInt() {
		return 0, false
	}
	return int(v.AsInt()), true
}
