package module

import (
	"path/filepath"

	"golang.org/x/sync/singleflight"
)

// CompileFn compiles the source at an absolute pathname into a fresh,
// original Module. pkg/compiler supplies this; pkg/module only owns the
// memoization around it.
type CompileFn func(pathname string) (*Module, error)

// Registry memoizes "compile this pathname" across an entire compile
// session, giving spec.md §8's "idempotent module import" property:
// `import "./m.zs" as a` and `import "./m.zs" as b` anywhere in the
// program resolve to the same underlying SubModule and its top-level runs
// at most once.
//
// Grounded on spec.md §4.5's "either reuses an already-compiled Module or
// invokes a nested compile" rule. golang.org/x/sync/singleflight collapses
// concurrent/duplicate requests for the same pathname into one compile —
// the compiler is single-threaded today, but this also makes the registry
// safe to reuse from a parallel build driver without reworking it later.
type Registry struct {
	group   singleflight.Group
	modules map[string]*Module
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Resolve returns the Module for pathname, compiling it via compile on
// first request and reusing the cached Module (well, a shadow clone of
// it, see below) on every later request for the same path — regardless of
// alias. alias names the *importing* site's binding and is used only to
// build the returned clone's Name so two different
// `import ... as` sites can hold distinct-looking Module headers over the
// same shared SubModule.
func (r *Registry) Resolve(pathname, alias string, compile CompileFn) (*Module, error) {
	abs, err := filepath.Abs(pathname)
	if err != nil {
		return nil, err
	}

	v, err, _ := r.group.Do(abs, func() (any, error) {
		if m, ok := r.modules[abs]; ok {
			return m, nil
		}
		m, err := compile(abs)
		if err != nil {
			return nil, err
		}
		r.modules[abs] = m
		return m, nil
	})
	if err != nil {
		return nil, err
	}

	original := v.(*Module)
	if alias == "" || alias == original.Name {
		return original, nil
	}
	return original.Clone(alias, abs), nil
}
