// Command zs is the CLI entry point spec.md §6 describes as an external
// collaborator ("the file loader and CLI entry point ... supplies source
// bytes and a root pathname") — a thin driver around pkg/runner. Grounded on
// teacher's cmd/php-go/main.go command-dispatch shape, reduced to this
// spec's single invocation form (§6: "<program> <source-path>").
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/krizos/zs/pkg/runner"
)

const version = "0.1.0-dev"

func main() {
	switch {
	case len(os.Args) >= 2 && (os.Args[1] == "--version" || os.Args[1] == "-v"):
		fmt.Printf("zs v%s\n", version)
		return
	case len(os.Args) >= 2 && (os.Args[1] == "--help" || os.Args[1] == "-h"):
		printUsage()
		return
	}

	fs := flag.NewFlagSet("zs", flag.ExitOnError)
	gcThreshold := fs.Int("gc-threshold", 0, "initial GC byte threshold (0: spec default, 32 MiB)")
	fs.Usage = printUsage
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg := runner.Config{GCThreshold: *gcThreshold}
	code, _ := runner.RunWithConfig(fs.Arg(0), fs.Args()[1:], os.Stdout, os.Stderr, cfg)
	os.Exit(code)
}

func printUsage() {
	fmt.Printf("zs v%s\n", version)
	fmt.Println("A stack-based bytecode interpreter")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  zs [flags] <source-path>    Execute a script")
	fmt.Println("  zs --version, -v            Show version")
	fmt.Println("  zs --help, -h               Show this help")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -gc-threshold bytes         Initial GC byte threshold (default: spec's 32 MiB)")
}
