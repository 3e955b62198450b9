package kit

// Registry records the row names taken within one kit. Names compare
// case-sensitively. The zero value is not usable; call NewRegistry.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Has reports whether name is taken.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Register marks name as taken. It reports false if it already was.
func (r *Registry) Register(name string) bool {
	if r.Has(name) {
		return false
	}
	r.names[name] = struct{}{}
	return true
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.names)
}
