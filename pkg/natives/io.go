package natives

import (
	"bufio"
	"fmt"
	"os"

	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/types"
	"github.com/krizos/zs/pkg/vm"
)

// buildIO implements the `io` native module — grounded on
// original_source/include/native_io.h's symbol catalog (read/write/
// readln/file I/O), scoped to the subset a scripting runtime's stdin/
// stdout/file-read surface needs. No file-handle value is exposed:
// read_file and write_file take a path string and read or write the whole
// file in one call.
func buildIO(v *vm.VM) *module.NativeModule {
	nm := module.NewNativeModule("io")
	stdinReader := bufio.NewReader(os.Stdin)

	nf(v, nm, "write", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		fmt.Fprint(ctx.(*vm.VM).Stdout, argv[0].String())
		return types.Empty, nil
	})

	nf(v, nm, "writeln", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		fmt.Fprintln(ctx.(*vm.VM).Stdout, argv[0].String())
		return types.Empty, nil
	})

	nf(v, nm, "readln", 0, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		line, err := stdinReader.ReadString('\n')
		if err != nil && line == "" {
			return types.Empty, fmt.Errorf("readln: %s", err)
		}
		line = trimNewline(line)
		o := ctx.(*vm.VM).Track(types.NewStrObj(line))
		return types.NewObj(o), nil
	})

	nf(v, nm, "read_file", 1, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsObjKind(types.KindStr) {
			return types.Empty, fmt.Errorf("read_file expects a string path")
		}
		path := argv[0].AsObj().AsStr().String()
		data, err := os.ReadFile(path)
		if err != nil {
			return types.Empty, fmt.Errorf("read_file %q: %s", path, err)
		}
		o := ctx.(*vm.VM).Track(types.NewStrObj(string(data)))
		return types.NewObj(o), nil
	})

	nf(v, nm, "write_file", 2, func(argv []types.Value, _ types.Value, ctx any) (types.Value, error) {
		if !argv[0].IsObjKind(types.KindStr) {
			return types.Empty, fmt.Errorf("write_file expects a string path")
		}
		path := argv[0].AsObj().AsStr().String()
		if err := os.WriteFile(path, []byte(argv[1].String()), 0o644); err != nil {
			return types.Empty, fmt.Errorf("write_file %q: %s", path, err)
		}
		return types.Empty, nil
	})

	return nm
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
