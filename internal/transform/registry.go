package transform

import "strconv"

// idSeparator joins a reserved seed and its collision counter.
const idSeparator = "_"

// Registry hands out identifiers that are unique within its scope.
// Reserved names are never released.
type Registry struct {
	reserved map[string]struct{}
}

// NewRegistry creates a Registry with the given names already taken.
func NewRegistry(taken ...string) *Registry {
	r := &Registry{reserved: make(map[string]struct{}, len(taken))}
	for _, name := range taken {
		r.reserved[name] = struct{}{}
	}

	return r
}

// Reserve returns seed if it is free, otherwise the first free of
// seed_1, seed_2, ... The returned name is reserved.
func (r *Registry) Reserve(seed string) string {
	if !r.Has(seed) {
		r.reserved[seed] = struct{}{}
		return seed
	}

	for i := 1; ; i++ {
		id := seed + idSeparator + strconv.Itoa(i)
		if !r.Has(id) {
			r.reserved[id] = struct{}{}
			return id
		}
	}
}

// Has reports whether name is taken.
func (r *Registry) Has(name string) bool {
	_, ok := r.reserved[name]
	return ok
}

// Len returns the number of taken names.
func (r *Registry) Len() int {
	return len(r.reserved)
}
