package heap

import "github.com/krizos/zs/pkg/types"

// RootFn enumerates every Value the VM currently holds a live reference to
// (globals, every frame's locals/operand stack, the exception being
// unwound, open OutValues). The collector calls visit once per root; it
// takes care of walking from there.
type RootFn func(visit func(types.Value))

// MaybeCollect runs a cycle if adding pendingBytes would cross the current
// threshold, per spec.md §4.1's "check before allocating" accounting rule.
// Reports whether a cycle ran.
func (h *Heap) MaybeCollect(pendingBytes int, roots RootFn) bool {
	if h.liveBytes+pendingBytes <= h.threshold {
		return false
	}
	h.Collect(roots)
	return true
}

// Collect runs one mark-sweep cycle and adjusts the threshold per spec.md
// §4.9: if the cycle didn't free enough to get comfortably under the
// current threshold, double it so the next cycle isn't immediately
// re-triggered by the same live set; if live bytes fall under a quarter of
// the threshold, halve it back down so a heap that shrank a lot doesn't
// keep a stale, oversized ceiling. Returns bytes reclaimed.
func (h *Heap) Collect(roots RootFn) int {
	roots(markValue)

	reclaimed := h.sweep()

	switch {
	case h.liveBytes > h.threshold/2:
		h.threshold *= 2
	case h.liveBytes < h.threshold/4 && h.threshold > initialThreshold:
		h.threshold /= 2
		if h.threshold < initialThreshold {
			h.threshold = initialThreshold
		}
	}
	return reclaimed
}

// sweep walks the intrusive object list once: survivors are unmarked for
// the next cycle and kept, unmarked objects are unlinked, subtracted from
// liveBytes, and (for Str, the highest-churn kind) handed to the reuse
// pool instead of simply being dropped for Go's GC to reclaim later.
func (h *Heap) sweep() int {
	reclaimed := 0
	o := h.head
	for o != nil {
		next := o.Next
		if o.Marked {
			o.Marked = false
			o = next
			continue
		}

		h.unlink(o)
		reclaimed += Size(o)
		h.liveBytes -= Size(o)
		if o.Kind == types.KindStr {
			h.recycleStr(o)
		}
		o = next
	}
	return reclaimed
}

func (h *Heap) unlink(o *types.Obj) {
	if o.Prev != nil {
		o.Prev.Next = o.Next
	} else {
		h.head = o.Next
	}
	if o.Next != nil {
		o.Next.Prev = o.Prev
	} else {
		h.tail = o.Prev
	}
	o.Prev, o.Next = nil, nil
	h.count--
}
