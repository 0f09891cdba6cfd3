package distill

// scopeKey identifies a (scope, structure) pair in the seen registry.
// Scope is the nesting depth under the per-depth policy and a single fixed
// value under the global policy.
type scopeKey struct {
	scope int
	key   StructureKey
}

const globalScope = -1

// seenRegistry tracks which structures have already produced a shown
// representative during one distillation invocation. It only grows; it is
// created at the start of an invocation and discarded at the end.
type seenRegistry struct {
	positionDependent bool
	seen              map[scopeKey]struct{}
}

func newSeenRegistry(positionDependent bool) *seenRegistry {
	return &seenRegistry{
		positionDependent: positionDependent,
		seen:              make(map[scopeKey]struct{}, 64),
	}
}

// observe records key at the scope selected for depth and reports whether
// this is its first appearance there, i.e. whether a representative should
// be shown.
func (r *seenRegistry) observe(depth int, key StructureKey) bool {
	scope := globalScope
	if r.positionDependent {
		scope = depth
	}
	sk := scopeKey{scope: scope, key: key}
	if _, ok := r.seen[sk]; ok {
		return false
	}
	r.seen[sk] = struct{}{}
	return true
}
