package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	byKey    map[string]Binding
	byAction map[Action][]string // for help
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to the later binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byKey:    make(map[string]Binding),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = b
		}
		r.byAction[b.Action] = dedupe(append(r.byAction[b.Action], b.Keys...))
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key].Action
}

// Lookup returns the full binding for a key.
func (r *Resolver) Lookup(key string) (Binding, bool) {
	b, ok := r.byKey[key]
	return b, ok
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func dedupe(s []string) []string {
	seen := make(map[string]bool, len(s))
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
