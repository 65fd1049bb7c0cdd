package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portway/mapping-core/pkg/entity"
)

func issue(id string, relations map[string]any) *entity.Entity {
	return &entity.Entity{
		Identifier: id,
		Blueprint:  "jiraIssue",
		Properties: map[string]any{},
		Relations:  relations,
	}
}

func TestSameAndRef(t *testing.T) {
	a := issue("ABC-1", nil)
	b := issue("ABC-1", map[string]any{"project": "ABC"})
	c := issue("ABC-2", nil)

	assert.True(t, entity.Same(a, b))
	assert.False(t, entity.Same(a, c))
	assert.Equal(t, entity.Ref{Identifier: "ABC-1", Blueprint: "jiraIssue"}, a.Ref())
}

func TestRelationTargets(t *testing.T) {
	e := issue("ABC-1", map[string]any{
		"project":     "ABC",
		"parentIssue": nil,
		"subtasks":    []any{"ABC-2", "ABC-3", nil},
		"watchers":    []string{"u1"},
		"empty":       "",
	})

	assert.ElementsMatch(t, []string{"ABC", "ABC-2", "ABC-3", "u1"}, e.RelationTargets())
}

func TestCompare(t *testing.T) {
	before := []*entity.Entity{issue("ABC-1", nil), issue("ABC-2", nil)}
	after := []*entity.Entity{issue("ABC-2", nil), issue("ABC-3", nil)}

	d := entity.Compare(before, after)

	require.Len(t, d.Created, 1)
	assert.Equal(t, "ABC-3", d.Created[0].Identifier)
	require.Len(t, d.Modified, 1)
	assert.Equal(t, "ABC-2", d.Modified[0].Identifier)
	require.Len(t, d.Deleted, 1)
	assert.Equal(t, "ABC-1", d.Deleted[0].Identifier)

	kept := d.Kept()
	require.Len(t, kept, 2)
	assert.Equal(t, "ABC-3", kept[0].Identifier)
}

func TestCompare_BlueprintDistinguishes(t *testing.T) {
	// Same identifier under different blueprints is a different entity.
	before := []*entity.Entity{{Identifier: "ABC", Blueprint: "jiraProject"}}
	after := []*entity.Entity{{Identifier: "ABC", Blueprint: "jiraIssue"}}

	d := entity.Compare(before, after)
	assert.Len(t, d.Created, 1)
	assert.Len(t, d.Deleted, 1)
	assert.Empty(t, d.Modified)
}

func TestOrderByDependencies(t *testing.T) {
	project := &entity.Entity{Identifier: "ABC", Blueprint: "jiraProject"}
	parent := issue("ABC-1", map[string]any{"project": "ABC"})
	child := issue("ABC-2", map[string]any{"project": "ABC", "parentIssue": "ABC-1"})

	ordered := entity.OrderByDependencies([]*entity.Entity{child, parent, project})

	pos := map[string]int{}
	for i, e := range ordered {
		pos[e.Identifier] = i
	}
	require.Len(t, ordered, 3)
	assert.Less(t, pos["ABC"], pos["ABC-1"], "project before parent issue")
	assert.Less(t, pos["ABC-1"], pos["ABC-2"], "parent before child")
}

func TestOrderByDependencies_CycleTolerated(t *testing.T) {
	a := issue("A", map[string]any{"next": "B"})
	b := issue("B", map[string]any{"next": "A"})
	standalone := issue("C", nil)

	ordered := entity.OrderByDependencies([]*entity.Entity{a, b, standalone})

	require.Len(t, ordered, 3)
	assert.Equal(t, "C", ordered[0].Identifier, "acyclic entity first")
}

func TestOrderByDependencies_SelfReference(t *testing.T) {
	e := issue("A", map[string]any{"parentIssue": "A"})
	ordered := entity.OrderByDependencies([]*entity.Entity{e})
	require.Len(t, ordered, 1)
}

func TestPlanDeletions(t *testing.T) {
	kept := []*entity.Entity{
		issue("ABC-1", map[string]any{"project": "ABC"}),
	}
	candidates := []entity.Ref{
		{Identifier: "ABC-1", Blueprint: "jiraIssue"}, // still kept
		{Identifier: "ABC", Blueprint: "jiraProject"}, // referenced by kept
		{Identifier: "ABC-9", Blueprint: "jiraIssue"}, // genuinely stale
	}

	// With createMissingRelatedEntities, referenced targets are protected.
	allowed := entity.PlanDeletions(candidates, kept, true)
	require.Len(t, allowed, 1)
	assert.Equal(t, "ABC-9", allowed[0].Identifier)

	// Without it, only entities still present are protected.
	allowed = entity.PlanDeletions(candidates, kept, false)
	require.Len(t, allowed, 2)
	assert.Equal(t, "ABC", allowed[0].Identifier)
	assert.Equal(t, "ABC-9", allowed[1].Identifier)
}
