package natives

import (
	"fmt"
	"math/rand"

	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// buildRandom implements the `random` native module — grounded on
// original_source/include/native_random.h's symbol catalog. Per spec.md §5
// ("Native modules may maintain their own process-wide state... but the
// core contract forbids mutation from outside the VM thread"), this
// module's *rand.Rand is owned by the closures captured here, not by the
// VM or types.Record — the single-threaded execution model makes that
// safe without a mutex.
func buildRandom(v *vm.VM) *module.NativeModule {
	nm := module.NewNativeModule("random")
	rng := rand.New(rand.NewSource(1))

	nf(v, nm, "seed", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsInt() {
			return types.Empty, fmt.Errorf("seed expects an int, got %s", argv[0].Tag())
		}
		rng = rand.New(rand.NewSource(argv[0].AsInt()))
		return types.Empty, nil
	})

	nf(v, nm, "int", 2, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsInt() || !argv[1].IsInt() {
			return types.Empty, fmt.Errorf("int(lo,hi) expects int bounds")
		}
		lo, hi := argv[0].AsInt(), argv[1].AsInt()
		if hi < lo {
			return types.Empty, fmt.Errorf("int(%d,%d): hi must be >= lo", lo, hi)
		}
		return types.NewInt(lo + rng.Int63n(hi-lo+1)), nil
	})

	nf(v, nm, "float", 0, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		return types.NewFloat(rng.Float64()), nil
	})

	return nm
}
