package entity

// OrderByDependencies orders entities so that every entity appears after the
// entities it references through relations, which lets a host upsert related
// entities first. Relation targets are matched by identifier within the
// given set; references to entities outside the set are ignored.
//
// Cycles are tolerated: entities on a cycle are appended in input order
// after all acyclic entities.
func OrderByDependencies(entities []*Entity) []*Entity {
	byIdentifier := make(map[string][]int, len(entities))
	for i, e := range entities {
		byIdentifier[e.Identifier] = append(byIdentifier[e.Identifier], i)
	}

	// dependents[i] lists entities that reference entity i.
	dependents := make([][]int, len(entities))
	indegree := make([]int, len(entities))
	for i, e := range entities {
		for _, target := range e.RelationTargets() {
			for _, j := range byIdentifier[target] {
				if i == j {
					continue // self-reference
				}
				dependents[j] = append(dependents[j], i)
				indegree[i]++
			}
		}
	}

	// Kahn's algorithm, visiting in input order for stable output.
	var queue []int
	for i := range entities {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	ordered := make([]*Entity, 0, len(entities))
	placed := make([]bool, len(entities))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		ordered = append(ordered, entities[i])
		placed[i] = true
		for _, dep := range dependents[i] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	// Remainder is cyclic.
	for i, e := range entities {
		if !placed[i] {
			ordered = append(ordered, e)
		}
	}
	return ordered
}
