package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/Nellmory/MehaAndShubi/controllers/catalog"
)

// SetupCatalogRoutes registers the public catalog reads.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/categories", catalogControllers.GetCategories(db))

	r.GET("/products", catalogControllers.GetProducts(db))
	r.GET("/products/:id", catalogControllers.GetProductByID(db))
	r.POST("/products/by-category", catalogControllers.GetProductsByCategory(db))
}
