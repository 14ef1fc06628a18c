package world

import "fmt"

// Handle identifies an object in a Registry. The zero Handle is never issued.
//
// A handle goes stale once its object is removed; the slot's generation moves on
// so a reused slot never resolves an old handle.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) Valid() bool { return h.gen != 0 }

func (h Handle) String() string { return fmt.Sprintf("#%d.%d", h.index, h.gen) }

// Registry is a slot map with O(1) add, remove and lookup.
type Registry struct {
	objects []Object
	gens    []uint32
	alive   []bool
	free    []uint32
	n       int
}

func NewRegistry(capacity int) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{
		objects: make([]Object, 0, capacity),
		gens:    make([]uint32, 0, capacity),
		alive:   make([]bool, 0, capacity),
	}
}

// Add stores obj and returns its handle.
func (r *Registry) Add(obj Object) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.objects))
		r.objects = append(r.objects, nil)
		r.gens = append(r.gens, 0)
		r.alive = append(r.alive, false)
	}
	r.gens[idx]++
	if r.gens[idx] == 0 {
		r.gens[idx] = 1
	}
	r.objects[idx] = obj
	r.alive[idx] = true
	r.n++
	return Handle{index: idx, gen: r.gens[idx]}
}

// Remove drops the object behind h. It reports false for stale handles.
func (r *Registry) Remove(h Handle) bool {
	if !r.live(h) {
		return false
	}
	r.objects[h.index] = nil
	r.alive[h.index] = false
	r.free = append(r.free, h.index)
	r.n--
	return true
}

// Get resolves a handle.
func (r *Registry) Get(h Handle) (Object, bool) {
	if !r.live(h) {
		return nil, false
	}
	return r.objects[h.index], true
}

func (r *Registry) Len() int { return r.n }

// Each visits live objects in slot order. fn may remove the visited handle.
func (r *Registry) Each(fn func(h Handle, obj Object)) {
	for i := range r.objects {
		if !r.alive[i] {
			continue
		}
		fn(Handle{index: uint32(i), gen: r.gens[i]}, r.objects[i])
	}
}

// Clear removes everything. Generations are kept so old handles stay stale.
func (r *Registry) Clear() {
	r.free = r.free[:0]
	for i := len(r.objects) - 1; i >= 0; i-- {
		r.objects[i] = nil
		r.alive[i] = false
		r.free = append(r.free, uint32(i))
	}
	r.n = 0
}

func (r *Registry) live(h Handle) bool {
	return h.gen != 0 && int(h.index) < len(r.objects) && r.alive[h.index] && r.gens[h.index] == h.gen
}
