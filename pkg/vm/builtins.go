package vm

import (
	"fmt"

	"github.com/krizos/zs/pkg/types"
)

// builtinMethod looks up a kind's built-in method table — spec.md §4.10's
// "ordinary Value's methods are its kind's builtin table, not a separate
// SGET path" — mirroring the NGET/SGET lookup used for free functions but
// scoped per-Kind and resolved by execAccess instead of the module symbol
// table.
type builtinFn func(argv []types.Value, target types.Value, ctx any) (types.Value, error)

type builtinEntry struct {
	arity uint8
	fn    builtinFn
}

var builtinTables = map[types.Kind]map[string]builtinEntry{
	types.KindStr: {
		"len":    {0, builtinStrLen},
		"code":   {1, builtinStrCode},
		"substr": {2, builtinStrSubstr},
	},
	types.KindArray: {
		"len":      {0, builtinArrayLen},
		"first":    {0, builtinArrayFirst},
		"last":     {0, builtinArrayLast},
		"to_list":  {0, builtinArrayToList},
		"contains": {1, builtinArrayContains},
	},
	types.KindList: {
		"len":          {0, builtinListLen},
		"first":        {0, builtinListFirst},
		"last":         {0, builtinListLast},
		"to_array":     {0, builtinListToArray},
		"contains":     {1, builtinListContains},
		"clear":        {0, builtinListClear},
		"grow":         {1, builtinListGrow},
		"insert":       {2, builtinListInsert},
		"insert_at":    {2, builtinListInsert},
		"remove":       {1, builtinListRemove},
		"remove_first": {0, builtinListRemoveFirst},
		"remove_last":  {0, builtinListRemoveLast},
	},
	types.KindDict: {
		"len":      {0, builtinDictLen},
		"contains": {1, builtinDictContains},
		"remove":   {1, builtinDictRemove},
		"clear":    {0, builtinDictClear},
	},
}

// lookupBuiltin finds kind's method named name, returning a freshly bound
// NativeFn Obj (Target == target) ready to CALL.
func lookupBuiltin(kind types.Kind, name string, target types.Value) (*types.Obj, bool) {
	table, ok := builtinTables[kind]
	if !ok {
		return nil, false
	}
	entry, ok := table[name]
	if !ok {
		return nil, false
	}
	nf := &types.NativeFn{Name: name, Arity: entry.arity, Target: target, Func: entry.fn}
	return types.NewKindedObj(types.KindNativeFn, nf), true
}

func builtinStrLen(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	return types.NewInt(int64(target.AsObj().AsStr().Len())), nil
}

func builtinStrCode(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	s := target.AsObj().AsStr()
	i := argv[0].AsInt()
	if i < 0 || i >= int64(s.Len()) {
		return types.Empty, fmt.Errorf("index %d out of range [0,%d)", i, s.Len())
	}
	return types.NewInt(int64(s.Data[i])), nil
}

func builtinStrSubstr(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	s := target.AsObj().AsStr().String()
	start, length := argv[0].AsInt(), argv[1].AsInt()
	if start < 0 || length < 0 || start+length > int64(len(s)) {
		return types.Empty, fmt.Errorf("substr(%d,%d) out of range for length %d", start, length, len(s))
	}
	vm := ctx.(*VM)
	o := vm.track(types.NewStrObj(s[start : start+length]))
	return types.NewObj(o), nil
}

func builtinArrayLen(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	return types.NewInt(int64(target.AsObj().AsArray().Len())), nil
}

func builtinArrayFirst(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	return target.AsObj().AsArray().Get(0)
}

func builtinArrayLast(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	a := target.AsObj().AsArray()
	return a.Get(a.Len() - 1)
}

func builtinArrayToList(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	vm := ctx.(*VM)
	o := vm.track(types.NewListObj(target.AsObj().AsArray().Elems))
	return types.NewObj(o), nil
}

func builtinArrayContains(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	for _, v := range target.AsObj().AsArray().Elems {
		if v.Equal(argv[0]) {
			return types.NewBool(true), nil
		}
	}
	return types.NewBool(false), nil
}

func builtinListLen(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	return types.NewInt(int64(target.AsObj().AsList().Len())), nil
}

func builtinListFirst(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	return target.AsObj().AsList().Get(0)
}

func builtinListLast(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	l := target.AsObj().AsList()
	return l.Get(l.Len() - 1)
}

func builtinListToArray(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	vm := ctx.(*VM)
	o := vm.track(types.NewArrayObjFrom(target.AsObj().AsList().Elems))
	return types.NewObj(o), nil
}

func builtinListContains(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	for _, v := range target.AsObj().AsList().Elems {
		if v.Equal(argv[0]) {
			return types.NewBool(true), nil
		}
	}
	return types.NewBool(false), nil
}

func builtinListClear(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	l := target.AsObj().AsList()
	l.Elems = l.Elems[:0]
	return types.Empty, nil
}

func builtinListGrow(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	n := argv[0].AsInt()
	if n < 0 {
		return types.Empty, fmt.Errorf("grow requires a non-negative count, got %d", n)
	}
	l := target.AsObj().AsList()
	for i := int64(0); i < n; i++ {
		l.Push(types.Empty)
	}
	return types.Empty, nil
}

func builtinListInsert(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	l := target.AsObj().AsList()
	i := int(argv[0].AsInt())
	if i < 0 || i > l.Len() {
		return types.Empty, fmt.Errorf("insert index %d out of range [0,%d]", i, l.Len())
	}
	l.Elems = append(l.Elems, types.Empty)
	copy(l.Elems[i+1:], l.Elems[i:])
	l.Elems[i] = argv[1]
	return types.Empty, nil
}

func builtinListRemove(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	l := target.AsObj().AsList()
	i := int(argv[0].AsInt())
	if i < 0 || i >= l.Len() {
		return types.Empty, fmt.Errorf("remove index %d out of range [0,%d)", i, l.Len())
	}
	v := l.Elems[i]
	l.Elems = append(l.Elems[:i], l.Elems[i+1:]...)
	return v, nil
}

func builtinListRemoveFirst(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	l := target.AsObj().AsList()
	if l.Len() == 0 {
		return types.Empty, fmt.Errorf("remove_first on empty list")
	}
	v := l.Elems[0]
	l.Elems = l.Elems[1:]
	return v, nil
}

func builtinListRemoveLast(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	return target.AsObj().AsList().Pop()
}

func builtinDictLen(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	return types.NewInt(int64(target.AsObj().AsDict().Len())), nil
}

func builtinDictContains(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	_, ok := target.AsObj().AsDict().Get(argv[0])
	return types.NewBool(ok), nil
}

func builtinDictRemove(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	ok := target.AsObj().AsDict().Delete(argv[0])
	return types.NewBool(ok), nil
}

func builtinDictClear(argv []types.Value, target types.Value, ctx any) (types.Value, error) {
	d := target.AsObj().AsDict()
	keys := make([]types.Value, 0, d.Len())
	d.Each(func(k, _ types.Value) { keys = append(keys, k) })
	for _, k := range keys {
		d.Delete(k)
	}
	return types.Empty, nil
}
