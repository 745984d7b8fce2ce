package natives

import (
	"fmt"
	"time"

	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// buildTime implements the `time` native module — grounded on
// original_source/include/native_time.h's symbol catalog (now/sleep). sleep
// blocks the VM (as io.readln does while it waits on stdin): spec.md §5 names sleep as
// exactly the kind of native call during which "the VM is entirely blocked
// until the native returns."
func buildTime(v *vm.VM) *module.NativeModule {
	nm := module.NewNativeModule("time")

	nf(v, nm, "now", 0, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		return types.NewInt(time.Now().Unix()), nil
	})

	nf(v, nm, "now_ms", 0, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		return types.NewInt(time.Now().UnixMilli()), nil
	})

	nf(v, nm, "sleep", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsInt() {
			return types.Empty, fmt.Errorf("sleep expects an int millisecond count, got %s", argv[0].Tag())
		}
		ms := argv[0].AsInt()
		if ms < 0 {
			return types.Empty, fmt.Errorf("sleep: negative duration %d", ms)
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return types.Empty, nil
	})

	return nm
}
