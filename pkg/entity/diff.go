package entity

// Diff partitions two entity states into created, modified, and deleted
// sets. Membership is decided by catalog reference (blueprint + identifier):
// entities present only in after are created, present in both are modified,
// present only in before are deleted.
type Diff struct {
	Created  []*Entity
	Modified []*Entity
	Deleted  []*Entity
}

// Compare computes the diff between a previous and a current entity state.
// Order within each set follows the input order.
func Compare(before, after []*Entity) *Diff {
	beforeRefs := make(map[Ref]bool, len(before))
	for _, e := range before {
		beforeRefs[e.Ref()] = true
	}
	afterRefs := make(map[Ref]bool, len(after))
	for _, e := range after {
		afterRefs[e.Ref()] = true
	}

	d := &Diff{}
	for _, e := range after {
		if beforeRefs[e.Ref()] {
			d.Modified = append(d.Modified, e)
		} else {
			d.Created = append(d.Created, e)
		}
	}
	for _, e := range before {
		if !afterRefs[e.Ref()] {
			d.Deleted = append(d.Deleted, e)
		}
	}
	return d
}

// Kept returns the entities that remain in the current state: created plus
// modified, in that order.
func (d *Diff) Kept() []*Entity {
	kept := make([]*Entity, 0, len(d.Created)+len(d.Modified))
	kept = append(kept, d.Created...)
	kept = append(kept, d.Modified...)
	return kept
}
