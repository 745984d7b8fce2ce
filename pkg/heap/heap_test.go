package heap

import (
	"testing"

	"github.com/krizos/zs/pkg/types"
)

func TestTrackLinksAndAccounts(t *testing.T) {
	h := New()
	o := types.NewStrObj("hi")
	h.Track(o, Size(o))
	if h.Count() != 1 {
		t.Fatalf("got count %d, want 1", h.Count())
	}
	if h.LiveBytes() != Size(o) {
		t.Fatalf("got liveBytes %d, want %d", h.LiveBytes(), Size(o))
	}
}

func TestCollectSweepsUnreachableObjects(t *testing.T) {
	h := New()
	kept := h.Track(types.NewStrObj("kept"), 0)
	h.Track(types.NewStrObj("garbage"), 0) // never rooted

	root := types.NewObj(kept)
	reclaimed := h.Collect(func(visit func(types.Value)) {
		visit(root)
	})
	if reclaimed <= 0 {
		t.Fatalf("expected some bytes reclaimed, got %d", reclaimed)
	}
	if h.Count() != 1 {
		t.Fatalf("got count %d after sweep, want 1 (only the rooted object)", h.Count())
	}
}

func TestCollectMarksThroughListElements(t *testing.T) {
	h := New()
	inner := h.Track(types.NewStrObj("inner"), 0)
	listObj := h.Track(types.NewListObj([]types.Value{types.NewObj(inner)}), 0)
	h.Track(types.NewStrObj("unreachable"), 0)

	h.Collect(func(visit func(types.Value)) {
		visit(types.NewObj(listObj))
	})
	if h.Count() != 2 {
		t.Fatalf("got count %d, want 2 (list + inner str survive, unreachable str swept)", h.Count())
	}
}

func TestMaybeCollectOnlyRunsPastThreshold(t *testing.T) {
	h := New()
	h.threshold = 100
	h.Track(types.NewStrObj("x"), 50)

	if h.MaybeCollect(10, func(func(types.Value)) {}) {
		t.Fatal("should not have collected: 50+10 is under threshold 100")
	}
	if !h.MaybeCollect(60, func(func(types.Value)) {}) {
		t.Fatal("should have collected: 50+60 exceeds threshold 100")
	}
}

func TestAllocStrReusesRecycledHeader(t *testing.T) {
	h := New()
	o := h.Track(types.NewStrObj("old"), 0)
	h.unlink(o)
	h.recycleStr(o)

	reused := h.AllocStr("new")
	if reused != o {
		t.Fatal("expected AllocStr to reuse the recycled header")
	}
	if reused.AsStr().String() != "new" {
		t.Fatalf("got %q, want %q", reused.AsStr().String(), "new")
	}
}

func TestThresholdDoublesWhenLiveSetStaysLarge(t *testing.T) {
	h := New()
	h.threshold = 100
	kept := types.NewObj(h.Track(types.NewStrObj("big-live-set"), 80))

	h.Collect(func(visit func(types.Value)) { visit(kept) })
	if h.threshold <= 100 {
		t.Fatalf("expected threshold to grow past 100, got %d", h.threshold)
	}
}
