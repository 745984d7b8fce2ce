package natives

import (
	"fmt"
	"os"

	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// bindBareNatives binds the receiver-less top-level natives spec.md names
// directly: scenario 1's bare `print(x)` call and §6's `exit(code)`, the
// only "cancellation" primitive the core provides beyond `halt`.
func bindBareNatives(v *vm.VM) []string {
	v.Bind("print", v.Track(types.NewNativeFnObj("print", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		vm := ctx.(*vm.VM)
		fmt.Fprintln(vm.Stdout, argv[0].String())
		return types.Empty, nil
	})))
	v.Bind("exit", v.Track(types.NewNativeFnObj("exit", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsInt() {
			return types.Empty, fmt.Errorf("exit expects an int code, got %s", argv[0].Tag())
		}
		code := argv[0].AsInt()
		if code < 0 || code > 255 {
			return types.Empty, fmt.Errorf("exit code %d out of range [0,255]", code)
		}
		os.Exit(int(code))
		return types.Empty, nil // unreachable
	})))
	return []string{"print", "exit"}
}
