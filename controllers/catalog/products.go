package catalogControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/models"
)

type ProductResponse struct {
	ID              uint              `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Description     string            `json:"description"`
	Price           decimal.Decimal   `json:"price"`
	Category        uint              `json:"category"`
	CategoryName    string            `json:"category_name"`
	Characteristics datatypes.JSONMap `json:"characteristics"`
	Stock           int               `json:"stock"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
}

func newProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price,
		Category:        p.CategoryID,
		CategoryName:    p.Category.Name,
		Characteristics: p.Characteristics,
		Stock:           p.Stock,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

var productOrderings = map[string]string{
	"price":       "price ASC",
	"-price":      "price DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

// GET /products
// Filters: category, min_price, max_price; search over
// name/description/characteristics; ordering by price or created date.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category").Where("is_active = ?", true)

		if categoryID := c.Query("category"); categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
				return
			}
			query = query.Where("category_id = ?", uint(cid))
		}

		if minPrice := c.Query("min_price"); minPrice != "" {
			mp, err := decimal.NewFromString(minPrice)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPrice := c.Query("max_price"); maxPrice != "" {
			mp, err := decimal.NewFromString(maxPrice)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}

		if search := c.Query("search"); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(characteristics AS TEXT)) LIKE ?",
				like, like, like,
			)
		}

		orderClause, ok := productOrderings[c.DefaultQuery("ordering", "-created_at")]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ordering"})
			return
		}

		var products []models.Product
		if err := query.Order(orderClause).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		out := make([]ProductResponse, 0, len(products))
		for i := range products {
			out = append(out, newProductResponse(&products[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").Where("is_active = ?", true).First(&product, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, newProductResponse(&product))
	}
}

type byCategoryInput struct {
	Category uint `json:"category"`
}

// POST /products/by-category
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input byCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Category == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
			return
		}

		var products []models.Product
		if err := db.Preload("Category").
			Where("is_active = ? AND category_id = ?", true, input.Category).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		out := make([]ProductResponse, 0, len(products))
		for i := range products {
			out = append(out, newProductResponse(&products[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}
