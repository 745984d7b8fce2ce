package heap

import (
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
)

// markValue marks o and recurses into whatever it references, using an
// explicit worklist rather than call-stack recursion so a long Array/List/
// Dict chain can't overflow the goroutine stack. Already-marked objects are
// never re-pushed, which also makes this safe against reference cycles
// (Record/Closure fields that point back into the same graph).
func markValue(root types.Value) {
	if !root.IsObj() {
		return
	}
	work := []*types.Obj{root.AsObj()}
	for len(work) > 0 {
		o := work[len(work)-1]
		work = work[:len(work)-1]
		if o.Marked {
			continue
		}
		o.Marked = true

		switch o.Kind {
		case types.KindArray:
			for _, v := range o.AsArray().Elems {
				if v.IsObj() && !v.AsObj().Marked {
					work = append(work, v.AsObj())
				}
			}
		case types.KindList:
			for _, v := range o.AsList().Elems {
				if v.IsObj() && !v.AsObj().Marked {
					work = append(work, v.AsObj())
				}
			}
		case types.KindDict:
			o.AsDict().Each(func(k, v types.Value) {
				if k.IsObj() && !k.AsObj().Marked {
					work = append(work, k.AsObj())
				}
				if v.IsObj() && !v.AsObj().Marked {
					work = append(work, v.AsObj())
				}
			})
		case types.KindRecord:
			for _, v := range o.AsRecord().Fields {
				if v.IsObj() && !v.AsObj().Marked {
					work = append(work, v.AsObj())
				}
			}
		case types.KindClosure:
			for _, out := range o.AsClosure().Outs {
				if out == nil {
					continue
				}
				if out.Value.IsObj() && !out.Value.AsObj().Marked {
					work = append(work, out.Value.AsObj())
				}
			}
		case types.KindNativeFn:
			if t := o.AsNativeFn().Target; t.IsObj() && !t.AsObj().Marked {
				work = append(work, t.AsObj())
			}
		case types.KindModule:
			// Other modules are reached only through a Module value held by
			// the root module (an import alias) — spec.md §4.9 root #3. Once
			// reached, its own globals are live too.
			for _, g := range module.AsModule(o).Sub().Globals {
				if g.Value.IsObj() && !g.Value.AsObj().Marked {
					work = append(work, g.Value.AsObj())
				}
			}
		case types.KindNativeModule:
			for _, fnObj := range module.AsNativeModule(o).Symbols {
				if !fnObj.Marked {
					work = append(work, fnObj)
				}
			}
		}
		// Str, Fn, ForeignFn, ForeignLib carry no Value-typed children to
		// trace through (Fn's constants are scalars owned by its Module, not
		// graph edges the collector needs to follow).
	}
}
