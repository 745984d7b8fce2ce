package module

import (
	"fmt"
	"testing"
)

func TestRegistryResolveCompilesOncePerPathname(t *testing.T) {
	r := NewRegistry()
	calls := 0
	compile := func(pathname string) (*Module, error) {
		calls++
		return New("m", pathname), nil
	}

	m1, err := r.Resolve("./m.zs", "a", compile)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := r.Resolve("./m.zs", "b", compile)
	if err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Fatalf("got %d compiles, want 1", calls)
	}
	if m1 == m2 {
		t.Fatal("two different aliases should get distinct Module headers")
	}
	if m1.Sub() != m2.Sub() {
		t.Fatal("both aliases must share the same underlying SubModule")
	}
	if m1.Name != "a" || m2.Name != "b" {
		t.Fatalf("got names %q, %q, want a, b", m1.Name, m2.Name)
	}
}

func TestRegistryPropagatesCompileError(t *testing.T) {
	r := NewRegistry()
	wantErr := fmt.Errorf("boom")
	_, err := r.Resolve("./broken.zs", "x", func(string) (*Module, error) {
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
}

func TestRegistryReResolveAfterErrorRetriesCompile(t *testing.T) {
	r := NewRegistry()
	calls := 0
	_, _ = r.Resolve("./retry.zs", "x", func(string) (*Module, error) {
		calls++
		return nil, fmt.Errorf("fail once")
	})
	m, err := r.Resolve("./retry.zs", "y", func(pathname string) (*Module, error) {
		calls++
		return New("retry", pathname), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("got %d compile attempts, want 2 (first failed, second succeeded)", calls)
	}
	if m == nil {
		t.Fatal("expected a module on the second, successful resolve")
	}
}
