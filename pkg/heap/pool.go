package heap

import "github.com/krizos/zs/pkg/types"

// maxStrFree caps how many swept Str objs the pool hangs onto; past this
// the rest are left for Go's own GC rather than growing the pool
// unbounded on a workload that briefly allocates a huge number of strings.
const maxStrFree = 256

func (h *Heap) recycleStr(o *types.Obj) {
	if len(h.strFree) >= maxStrFree {
		return
	}
	h.strFree = append(h.strFree, o)
}

// AllocStr returns a Str Obj holding s, tracked on this heap. A recycled
// Obj header from the free list is reused when one is available — mirrors
// lzflist_alloc's free-list-first strategy — otherwise a fresh one is
// built via types.NewStrObj.
func (h *Heap) AllocStr(s string) *types.Obj {
	if n := len(h.strFree); n > 0 {
		o := h.strFree[n-1]
		h.strFree = h.strFree[:n-1]
		types.ResetStrObj(o, s)
		return h.Track(o, Size(o))
	}
	return h.Track(types.NewStrObj(s), len(s)+48)
}
