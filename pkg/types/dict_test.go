package types

import (
	"fmt"
	"testing"
)

func TestDictSetGetDelete(t *testing.T) {
	d := NewDictObj().AsDict()
	d.Set(NewInt(1), NewObj(NewStrObj("one")))
	d.Set(NewInt(2), NewObj(NewStrObj("two")))

	v, ok := d.Get(NewInt(1))
	if !ok || v.AsObj().AsStr().String() != "one" {
		t.Fatalf("got %v, %v", v, ok)
	}
	if d.Len() != 2 {
		t.Fatalf("got len %d, want 2", d.Len())
	}

	if !d.Delete(NewInt(1)) {
		t.Fatal("Delete(1) should report found")
	}
	if _, ok := d.Get(NewInt(1)); ok {
		t.Fatal("key 1 should be gone after Delete")
	}
	if d.Len() != 1 {
		t.Fatalf("got len %d, want 1", d.Len())
	}
	if d.Delete(NewInt(99)) {
		t.Fatal("Delete of a missing key should report not-found")
	}
}

func TestDictUpdateExistingKey(t *testing.T) {
	d := NewDictObj().AsDict()
	d.Set(NewInt(1), NewInt(10))
	d.Set(NewInt(1), NewInt(20))
	if d.Len() != 1 {
		t.Fatalf("got len %d, want 1 (update, not insert)", d.Len())
	}
	v, _ := d.Get(NewInt(1))
	if v.AsInt() != 20 {
		t.Fatalf("got %v, want 20", v)
	}
}

func TestDictGrowsAndKeepsAllEntries(t *testing.T) {
	d := NewDictObj().AsDict()
	const n = 200
	for i := 0; i < n; i++ {
		d.Set(NewInt(int64(i)), NewObj(NewStrObj(fmt.Sprintf("v%d", i))))
	}
	if d.Len() != n {
		t.Fatalf("got len %d, want %d", d.Len(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := d.Get(NewInt(int64(i)))
		if !ok {
			t.Fatalf("key %d missing after growth", i)
		}
		want := fmt.Sprintf("v%d", i)
		if v.AsObj().AsStr().String() != want {
			t.Fatalf("key %d: got %q, want %q", i, v.AsObj().AsStr().String(), want)
		}
	}
}

func TestDictStringKeys(t *testing.T) {
	d := NewDictObj().AsDict()
	d.Set(NewObj(NewStrObj("a")), NewInt(1))
	d.Set(NewObj(NewStrObj("b")), NewInt(2))
	v, ok := d.Get(NewObj(NewStrObj("a")))
	if !ok || v.AsInt() != 1 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestDictEachVisitsEveryEntry(t *testing.T) {
	d := NewDictObj().AsDict()
	want := map[int64]bool{1: true, 2: true, 3: true}
	for k := range want {
		d.Set(NewInt(k), Empty)
	}
	seen := map[int64]bool{}
	d.Each(func(k, _ Value) { seen[k.AsInt()] = true })
	if len(seen) != len(want) {
		t.Fatalf("got %d entries visited, want %d", len(seen), len(want))
	}
}
