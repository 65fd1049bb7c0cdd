package entity

// PlanDeletions decides which stale catalog refs are safe to delete after a
// sync. A candidate is withheld when it denotes one of the entities being
// kept, or when createMissingRelatedEntities is enabled and a kept entity
// still references its identifier (deleting it would break that relation).
//
// The result preserves candidate order. This is the local, pure half of the
// delete flow; issuing the deletions is the host's responsibility.
func PlanDeletions(candidates []Ref, kept []*Entity, createMissingRelatedEntities bool) []Ref {
	keptRefs := make(map[Ref]bool, len(kept))
	referenced := make(map[string]bool)
	for _, e := range kept {
		keptRefs[e.Ref()] = true
		for _, target := range e.RelationTargets() {
			referenced[target] = true
		}
	}

	var allowed []Ref
	for _, c := range candidates {
		if keptRefs[c] {
			continue
		}
		if referenced[c.Identifier] && createMissingRelatedEntities {
			// Still related to a kept entity; the catalog keeps such
			// targets alive when this flag is on.
			continue
		}
		allowed = append(allowed, c)
	}
	return allowed
}
