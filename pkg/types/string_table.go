package types

// StringTable is a module's static-string pool: literal-string opcodes
// index into it, and two textually identical literals within the same
// module share one entry (spec.md §4.3, invariant 7). This adapts
// teacher's pkg/types/string.go Intern/stringInternMap from one process-
// wide global map to one table per module, since the spec scopes interning
// identity to "within a single module's static table" rather than
// globally.
type StringTable struct {
	entries []*Obj
	byText  map[string]int
}

func NewStringTable() *StringTable {
	return &StringTable{byText: make(map[string]int)}
}

// Intern returns the index of s in the table, creating and interning a new
// Str entry the first time s is seen.
func (t *StringTable) Intern(s string) int {
	if idx, ok := t.byText[s]; ok {
		return idx
	}
	idx := len(t.entries)
	t.entries = append(t.entries, newObj(KindStr, newStr(s, true)))
	t.byText[s] = idx
	return idx
}

// Get returns the interned Str Obj at idx (the compiler emits idx as the
// operand of OP_STRING and of the opcodes that name a global or field).
func (t *StringTable) Get(idx int) *Obj { return t.entries[idx] }

// Len reports how many distinct literals are interned so far.
func (t *StringTable) Len() int { return len(t.entries) }
