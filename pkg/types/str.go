package types

import "hash/fnv"

// Str is the Obj payload for the Str kind: a binary-safe byte buffer with
// a precomputed FNV-1a hash and an interned flag — grounded on
// spec.md §3 ("Str: byte buffer, precomputed FNV-1a hash, length, runtime-
// vs-interned flag") and teacher's pkg/types/string.go (computeHash, the
// Intern-vs-runtime-string distinction).
type Str struct {
	Data     []byte
	Hash     uint64
	Interned bool
}

func newStr(s string, interned bool) *Str {
	h := fnv.New64a()
	h.Write([]byte(s))
	return &Str{Data: []byte(s), Hash: h.Sum64(), Interned: interned}
}

// NewStrObj wraps a freshly computed (uninterned) runtime string in an Obj
// — for string concatenation, substr, etc, where sharing identity with an
// interned literal would be incorrect.
func NewStrObj(s string) *Obj {
	return newObj(KindStr, newStr(s, false))
}

// ResetStrObj rewrites a recycled Obj in place to hold s as a fresh,
// uninterned Str — used by pkg/heap's free-list pool to reuse a swept
// Str Obj's header instead of allocating a new one.
func ResetStrObj(o *Obj, s string) {
	o.Kind = KindStr
	o.Marked = false
	o.Payload = newStr(s, false)
}

func (s *Str) Len() int { return len(s.Data) }

func (s *Str) String() string { return string(s.Data) }

func (s *Str) Equal(other *Str) bool {
	if s.Hash != other.Hash || len(s.Data) != len(other.Data) {
		return false
	}
	return string(s.Data) == string(other.Data)
}

func (s *Str) Compare(other *Str) int {
	a, b := string(s.Data), string(other.Data)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (s *Str) Concat(other *Str) *Str {
	return newStr(string(s.Data)+string(other.Data), false)
}
