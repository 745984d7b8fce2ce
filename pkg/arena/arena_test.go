package arena

import "testing"

func TestAllocBumpsWithinRegion(t *testing.T) {
	a := New()
	b1 := a.Alloc(16)
	b2 := a.Alloc(16)
	if len(b1) != 16 || len(b2) != 16 {
		t.Fatalf("got lens %d, %d, want 16, 16", len(b1), len(b2))
	}
	if a.Used() != 32 {
		t.Fatalf("got used %d, want 32", a.Used())
	}
	if a.Len() != defaultRegionLen {
		t.Fatalf("got reserved %d, want %d (single region)", a.Len(), defaultRegionLen)
	}
}

func TestAllocSpillsToNewRegion(t *testing.T) {
	a := New()
	a.Alloc(defaultRegionLen - 8)
	before := a.Len()
	a.Alloc(64) // doesn't fit in the remaining 8 bytes of the first region
	if a.Len() <= before {
		t.Fatal("expected a second region to be opened")
	}
}

func TestAllocForOversizeRequestGrowsRegion(t *testing.T) {
	a := New()
	big := a.Alloc(defaultRegionLen * 3)
	if len(big) != defaultRegionLen*3 {
		t.Fatalf("got %d, want %d", len(big), defaultRegionLen*3)
	}
}

func TestAllocStringCopiesNotAliases(t *testing.T) {
	a := New()
	src := []byte("hello")
	s := a.AllocString(string(src))
	src[0] = 'X'
	if s != "hello" {
		t.Fatalf("AllocString aliased the caller's buffer: got %q", s)
	}
}

func TestReleaseDropsEverything(t *testing.T) {
	a := New()
	a.Alloc(100)
	a.Release()
	if a.Len() != 0 || a.Used() != 0 {
		t.Fatalf("got len=%d used=%d after Release, want 0, 0", a.Len(), a.Used())
	}
}
