package animation

// DefaultCapacity is the registry size used when [WithCapacity] is not
// given.
const DefaultCapacity = 64

// none marks the end of a slot chain.
const none int32 = -1

// slot is one arena cell. Live slots form an intrusive doubly-linked list
// in insertion order (newest at the front); free slots form a singly-linked
// free list through next. The generation counter is bumped on every detach
// so stale references to a recycled slot can be told apart from the new
// occupant.
type slot struct {
	anim Animation
	prev int32
	next int32
	gen  uint32
	used bool
}

// registry is a fixed-capacity arena of animation records. All storage is
// allocated up front; inserting and removing records never allocates, which
// keeps the per-frame path free of GC pressure.
type registry struct {
	slots []slot
	head  int32
	free  int32
	count int
}

func newRegistry(capacity int) registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := registry{
		slots: make([]slot, capacity),
		head:  none,
		free:  0,
	}
	for i := range r.slots {
		r.slots[i].prev = none
		r.slots[i].next = int32(i + 1)
	}
	r.slots[capacity-1].next = none
	return r
}

// insert copies a into a free slot and links it at the front of the live
// list. It reports false when the arena is exhausted.
func (r *registry) insert(a Animation) (int32, bool) {
	idx := r.free
	if idx == none {
		return none, false
	}
	s := &r.slots[idx]
	r.free = s.next

	s.anim = a
	s.used = true
	s.prev = none
	s.next = r.head
	if r.head != none {
		r.slots[r.head].prev = idx
	}
	r.head = idx
	r.count++
	return idx, true
}

// detach unlinks a live slot and returns it to the free list. The record
// is zeroed so the GC can reclaim the target and any closures it held.
func (r *registry) detach(idx int32) {
	s := &r.slots[idx]
	if !s.used {
		return
	}
	if s.prev != none {
		r.slots[s.prev].next = s.next
	} else {
		r.head = s.next
	}
	if s.next != none {
		r.slots[s.next].prev = s.prev
	}

	s.anim = Animation{}
	s.used = false
	s.gen++
	s.prev = none
	s.next = r.free
	r.free = idx
	r.count--
}

// clear detaches every live slot.
func (r *registry) clear() {
	for r.head != none {
		r.detach(r.head)
	}
}

// alive reports whether idx still holds the same record it held when gen
// was sampled.
func (r *registry) alive(idx int32, gen uint32) bool {
	return r.slots[idx].used && r.slots[idx].gen == gen
}
