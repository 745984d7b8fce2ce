// Package testscript runs golden end-to-end fixtures through pkg/runner —
// the same lexer→parser→compiler→natives→VM pipeline cmd/zs drives — and
// checks their captured stdout against an expected section. Fixtures are
// golang.org/x/tools/txtar archives (grounded on this retrieval pack's
// breadchris-yaegi/ymm135-go dependency on golang.org/x/tools, repurposed
// here from its original use to this module's golden-file format), each
// holding an "input.zs" source file and an "output" expectation, covering
// the concrete scenarios spec.md §8 lists.
package testscript

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/krizos/zs/pkg/runner"
)

func TestGolden(t *testing.T) {
	fixtures, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(fixtures) == 0 {
		t.Fatal("no fixtures found under testdata/")
	}

	for _, path := range fixtures {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			ar := txtar.Parse(raw)

			input, ok := fileNamed(ar, "input.zs")
			if !ok {
				t.Fatalf("fixture %s has no input.zs section", path)
			}
			want, ok := fileNamed(ar, "output")
			if !ok {
				t.Fatalf("fixture %s has no output section", path)
			}

			dir := t.TempDir()
			srcPath := filepath.Join(dir, "input.zs")
			if err := os.WriteFile(srcPath, input, 0o644); err != nil {
				t.Fatal(err)
			}

			var stdout, stderr bytes.Buffer
			code, _ := runner.Run(srcPath, nil, &stdout, &stderr)
			if code != 0 {
				t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
			}
			if got := stdout.String(); got != string(want) {
				t.Fatalf("stdout mismatch\n got:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func fileNamed(ar *txtar.Archive, name string) ([]byte, bool) {
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}
