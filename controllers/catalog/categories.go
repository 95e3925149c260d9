package catalogControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/models"
)

type CategoryResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Parent      *uint              `json:"parent"`
	Level       int                `json:"level"`
	Children    []CategoryResponse `json:"children"`
	CreatedAt   time.Time          `json:"created_at"`
}

// BuildCategoryTree nests the flat category list under its top-level
// entries and computes each node's level. Nodes trapped in a parent
// cycle have no reachable root and are left out; descent is capped at
// MaxCategoryDepth as a second guard.
func BuildCategoryTree(categories []models.Category) []CategoryResponse {
	byID := make(map[uint]*models.Category, len(categories))
	childrenOf := make(map[uint][]*models.Category)
	roots := make([]*models.Category, 0)

	for i := range categories {
		c := &categories[i]
		byID[c.ID] = c
	}
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}

	var build func(c *models.Category, depth int) CategoryResponse
	build = func(c *models.Category, depth int) CategoryResponse {
		node := CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Parent:      c.ParentID,
			Level:       models.TreeLevel(byID, c),
			Children:    []CategoryResponse{},
			CreatedAt:   c.CreatedAt,
		}
		if depth >= models.MaxCategoryDepth {
			return node
		}
		for _, child := range childrenOf[c.ID] {
			node.Children = append(node.Children, build(child, depth+1))
		}
		return node
	}

	out := make([]CategoryResponse, 0, len(roots))
	for _, root := range roots {
		out = append(out, build(root, 0))
	}
	return out
}

// GET /categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, BuildCategoryTree(categories))
	}
}
