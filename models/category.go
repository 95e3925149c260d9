package models

import "time"

type Category struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Slug        string     `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	ParentID    *uint      `gorm:"index" json:"parent"`
	Children    []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MaxCategoryDepth caps the parent-chain walk so a corrupted tree
// (a parent cycle) can never loop forever.
const MaxCategoryDepth = 32

// TreeLevel returns the distance from c to the root of its tree, walking
// parent links through the byID index. Broken links stop the walk; the
// result is capped at MaxCategoryDepth.
func TreeLevel(byID map[uint]*Category, c *Category) int {
	level := 0
	parent := c.ParentID
	for parent != nil && level < MaxCategoryDepth {
		p, ok := byID[*parent]
		if !ok {
			break
		}
		level++
		parent = p.ParentID
	}
	return level
}
