package natives

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// buildHash implements the `hash` native module — an EXPANSION beyond
// spec.md's listed "io, math, os, time, random" catalog, wiring in
// golang.org/x/crypto/blake2b (also carried by this retrieval pack's
// ymm135-go) for a content-hash primitive a scripting runtime's standard
// library plausibly ships.
func buildHash(v *vm.VM) *module.NativeModule {
	nm := module.NewNativeModule("hash")

	nf(v, nm, "blake2b", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsObjKind(types.KindStr) {
			return types.Empty, fmt.Errorf("blake2b expects a string, got %s", argv[0].Tag())
		}
		sum := blake2b.Sum256([]byte(argv[0].AsObj().AsStr().String()))
		o := ctx.(*vm.VM).Track(types.NewStrObj(hex.EncodeToString(sum[:])))
		return types.NewObj(o), nil
	})

	return nm
}
