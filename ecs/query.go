package ecs

// intersect returns the entities of base present in every other store.
func intersect(base []Entity, others ...store) []Entity {
	out := make([]Entity, 0, len(base))
	for _, e := range base {
		keep := true
		for _, s := range others {
			if !s.has(e) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}

func snapshot(ents []Entity) []Entity {
	return append([]Entity(nil), ents...)
}
