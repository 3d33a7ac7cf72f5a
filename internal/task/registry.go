package task

// Registry exposes lookup utilities for task definitions.
type Registry struct {
	order []Kind
	defs  map[Kind]Definition
}

// BuildRegistry constructs the registry of every task in display order.
func BuildRegistry() *Registry {
	defs := definitions()
	r := &Registry{
		order: make([]Kind, 0, len(defs)),
		defs:  make(map[Kind]Definition, len(defs)),
	}
	for _, def := range defs {
		r.order = append(r.order, def.Kind)
		r.defs[def.Kind] = def
	}
	return r
}

// Kinds returns the task kinds in display order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

// Find locates a definition by kind.
func (r *Registry) Find(kind Kind) (Definition, bool) {
	def, ok := r.defs[kind]
	return def, ok
}

// Next returns the kind delta steps away from kind, wrapping around. Unknown
// kinds resolve to the first task.
func (r *Registry) Next(kind Kind, delta int) Kind {
	if len(r.order) == 0 {
		return kind
	}
	idx := -1
	for i, k := range r.order {
		if k == kind {
			idx = i
			break
		}
	}
	if idx < 0 {
		return r.order[0]
	}
	n := len(r.order)
	return r.order[((idx+delta)%n+n)%n]
}
