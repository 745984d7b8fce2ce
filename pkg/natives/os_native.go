package natives

import (
	"os"

	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// buildOS implements the `os` native module — grounded on
// original_source/include/native_os.h's symbol catalog (args/env/exit).
// File name is os_native.go, not os.go, only to avoid colliding with the
// stdlib package name in directory listings; the module's script-visible
// name is still "os".
func buildOS(v *vm.VM) *module.NativeModule {
	nm := module.NewNativeModule("os")

	nf(v, nm, "args", 0, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		vmc := ctx.(*vm.VM)
		elems := make([]types.Value, len(vmc.Args))
		for i, a := range vmc.Args {
			elems[i] = types.NewObj(vmc.Track(types.NewStrObj(a)))
		}
		o := vmc.Track(types.NewListObj(elems))
		return types.NewObj(o), nil
	})

	nf(v, nm, "getenv", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsObjKind(types.KindStr) {
			return types.Empty, nil
		}
		val, ok := os.LookupEnv(argv[0].AsObj().AsStr().String())
		if !ok {
			return types.Empty, nil
		}
		o := ctx.(*vm.VM).Track(types.NewStrObj(val))
		return types.NewObj(o), nil
	})

	return nm
}
