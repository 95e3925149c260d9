package catalogControllers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nellmory/MehaAndShubi/models"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildCategoryTreeNestsChildren(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Clothing", Slug: "clothing"},
		{ID: 2, Name: "Coats", Slug: "coats", ParentID: uintPtr(1)},
		{ID: 3, Name: "Fur coats", Slug: "fur-coats", ParentID: uintPtr(2)},
		{ID: 4, Name: "Accessories", Slug: "accessories"},
	}

	tree := BuildCategoryTree(categories)
	require.Len(t, tree, 2)

	clothing := tree[0]
	require.Equal(t, "Clothing", clothing.Name)
	require.Equal(t, 0, clothing.Level)
	require.Len(t, clothing.Children, 1)

	coats := clothing.Children[0]
	require.Equal(t, "Coats", coats.Name)
	require.Equal(t, 1, coats.Level)
	require.Len(t, coats.Children, 1)
	require.Equal(t, 2, coats.Children[0].Level)

	require.Equal(t, "Accessories", tree[1].Name)
	require.Empty(t, tree[1].Children)
}

func TestBuildCategoryTreeSurvivesParentCycle(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Root", Slug: "root"},
		{ID: 2, Name: "A", Slug: "a", ParentID: uintPtr(3)},
		{ID: 3, Name: "B", Slug: "b", ParentID: uintPtr(2)},
	}

	// Must terminate; the cyclic nodes have no reachable root and are
	// left out of the tree.
	tree := BuildCategoryTree(categories)
	require.Len(t, tree, 1)
	require.Equal(t, "Root", tree[0].Name)
}
