// Package runner wires the lexer, parser, compiler, native-module catalog,
// and VM together into the single end-to-end pipeline spec.md §6 describes
// as the CLI's job — extracted out of cmd/zs/main.go so internal/testscript
// can drive the exact same path a real invocation takes, stdout/stderr
// redirected to a buffer instead of the process's own streams.
package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/krizos/zs/pkg/compiler"
	"github.com/krizos/zs/pkg/diag"
	"github.com/krizos/zs/pkg/lexer"
	"github.com/krizos/zs/pkg/module"
	"github.com/krizos/zs/pkg/natives"
	"github.com/krizos/zs/pkg/parser"
	"github.com/krizos/zs/pkg/vm"
)

// Config holds the CLI-tunable knobs spec.md §4.1 describes as starting
// points rather than fixed constants (currently just the GC's initial
// byte threshold). The zero value means "use the spec's own defaults".
type Config struct {
	GCThreshold int
}

// Run compiles and executes the script at pathname, writing program output
// to stdout and diagnostics/uncaught faults to stderr. It returns the
// process exit code spec.md §6 specifies (0 success, 1 compile/runtime
// failure). A script's exit(n) call ends the process directly with n, so
// Run does not return in that case.
func Run(pathname string, args []string, stdout, stderr io.Writer) (int, error) {
	return RunWithConfig(pathname, args, stdout, stderr, Config{})
}

// RunWithConfig is Run with an explicit Config instead of the defaults.
func RunWithConfig(pathname string, args []string, stdout, stderr io.Writer, cfg Config) (int, error) {
	var v *vm.VM
	if cfg.GCThreshold > 0 {
		v = vm.NewWithGCThreshold(nil, cfg.GCThreshold)
	} else {
		v = vm.New(nil) // root module is attached via SetRoot once compiled
	}
	v.Args = args
	v.Stdout = stdout
	v.Stderr = stderr

	reg := natives.New(v)
	modules := module.NewRegistry()

	var resolve func(requesting string) compiler.Resolver
	compileFile := func(p string) (*module.Module, error) {
		name := moduleName(p)
		mod, err := compileOne(p, name, reg, resolve(p), stderr)
		if err != nil {
			return nil, err
		}
		reg.Wire(mod)
		return mod, nil
	}
	resolve = func(requesting string) compiler.Resolver {
		dir := filepath.Dir(requesting)
		return func(importPath string) (*module.Module, error) {
			resolved := importPath
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(dir, importPath)
			}
			return modules.Resolve(resolved, "", compileFile)
		}
	}

	abs, err := filepath.Abs(pathname)
	if err != nil {
		fmt.Fprintf(stderr, "zs: %s\n", err)
		return 1, err
	}
	root, err := modules.Resolve(abs, "", compileFile)
	if err != nil {
		fmt.Fprintf(stderr, "zs: %s: %s\n", abs, err)
		return 1, err
	}

	v.SetRoot(root)
	code, runErr := v.Run() // Run already printed any uncaught fault to stderr
	return code, runErr
}

func compileOne(pathname, name string, reg *natives.Registry, resolve compiler.Resolver, stderr io.Writer) (*module.Module, error) {
	src, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}

	l := lexer.New(string(src), pathname)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		diag.PrintParseErrors(stderr, pathname, errs)
		return nil, fmt.Errorf("parse failed")
	}

	opts := compiler.Options{
		Resolve:   resolve,
		Globals:   reg.ModuleNames(),
		NativeFns: reg.BareNames(),
	}
	mod, err := compiler.Compile(prog, name, pathname, opts)
	if err != nil {
		diag.PrintCompileErrors(stderr, pathname, []error{err})
		return nil, err
	}
	return mod, nil
}

func moduleName(pathname string) string {
	base := filepath.Base(pathname)
	return base[:len(base)-len(filepath.Ext(base))]
}
