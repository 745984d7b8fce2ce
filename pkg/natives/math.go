package natives

import (
	"fmt"
	stdmath "math"

	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// buildMath implements the `math` native module on stdlib math — grounded
// on original_source/include/native_math.h's symbol catalog. Standard-
// library justification (recorded in DESIGN.md): no third-party numerics
// library appears anywhere in the retrieval pack, and every operation here
// is a thin 1:1 wrapper over a stdlib math function.
func buildMath(v *vm.VM) *module.NativeModule {
	nm := module.NewNativeModule("math")

	unary := func(name string, f func(float64) float64) {
		nf(v, nm, name, 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
			x, err := asFloat(argv[0])
			if err != nil {
				return types.Empty, err
			}
			return types.NewFloat(f(x)), nil
		})
	}

	nf(v, nm, "pi", 0, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		return types.NewFloat(stdmath.Pi), nil
	})
	nf(v, nm, "e", 0, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		return types.NewFloat(stdmath.E), nil
	})
	unary("sqrt", stdmath.Sqrt)
	unary("floor", stdmath.Floor)
	unary("ceil", stdmath.Ceil)
	unary("abs", stdmath.Abs)
	unary("sin", stdmath.Sin)
	unary("cos", stdmath.Cos)
	unary("tan", stdmath.Tan)
	unary("log", stdmath.Log)

	nf(v, nm, "pow", 2, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		x, err := asFloat(argv[0])
		if err != nil {
			return types.Empty, err
		}
		y, err := asFloat(argv[1])
		if err != nil {
			return types.Empty, err
		}
		return types.NewFloat(stdmath.Pow(x, y)), nil
	})

	nf(v, nm, "min", 2, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		x, err := asFloat(argv[0])
		if err != nil {
			return types.Empty, err
		}
		y, err := asFloat(argv[1])
		if err != nil {
			return types.Empty, err
		}
		return types.NewFloat(stdmath.Min(x, y)), nil
	})

	nf(v, nm, "max", 2, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		x, err := asFloat(argv[0])
		if err != nil {
			return types.Empty, err
		}
		y, err := asFloat(argv[1])
		if err != nil {
			return types.Empty, err
		}
		return types.NewFloat(stdmath.Max(x, y)), nil
	})

	return nm
}

func asFloat(v types.Value) (float64, error) {
	switch {
	case v.IsFloat():
		return v.AsFloat(), nil
	case v.IsInt():
		return float64(v.AsInt()), nil
	default:
		return 0, fmt.Errorf("expected a numeric argument, got %s", v.Tag())
	}
}
