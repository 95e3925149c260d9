package models

import "testing"

func index(categories []Category) map[uint]*Category {
	byID := make(map[uint]*Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	return byID
}

func TestTreeLevelWalksParentChain(t *testing.T) {
	root := Category{ID: 1, Name: "Clothing"}
	mid := Category{ID: 2, Name: "Coats", ParentID: ptr(uint(1))}
	leaf := Category{ID: 3, Name: "Fur coats", ParentID: ptr(uint(2))}
	byID := index([]Category{root, mid, leaf})

	if got := TreeLevel(byID, byID[1]); got != 0 {
		t.Errorf("root level = %d, want 0", got)
	}
	if got := TreeLevel(byID, byID[2]); got != 1 {
		t.Errorf("mid level = %d, want 1", got)
	}
	if got := TreeLevel(byID, byID[3]); got != 2 {
		t.Errorf("leaf level = %d, want 2", got)
	}
}

func TestTreeLevelStopsOnBrokenLink(t *testing.T) {
	orphan := Category{ID: 5, Name: "Orphan", ParentID: ptr(uint(99))}
	byID := index([]Category{orphan})

	if got := TreeLevel(byID, byID[5]); got != 0 {
		t.Errorf("orphan level = %d, want 0", got)
	}
}

func TestTreeLevelCapsParentCycle(t *testing.T) {
	a := Category{ID: 1, Name: "A", ParentID: ptr(uint(2))}
	b := Category{ID: 2, Name: "B", ParentID: ptr(uint(1))}
	byID := index([]Category{a, b})

	// Must terminate and never exceed the depth cap.
	if got := TreeLevel(byID, byID[1]); got != MaxCategoryDepth {
		t.Errorf("cyclic level = %d, want %d", got, MaxCategoryDepth)
	}
}

func ptr[T any](v T) *T { return &v }
