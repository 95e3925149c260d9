package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/config"
	cartControllers "github.com/Nellmory/MehaAndShubi/controllers/cart"
	"github.com/Nellmory/MehaAndShubi/middleware"
)

// SetupCartRoutes registers the "/cart" endpoints. Requires JWT.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("", cartControllers.AddCartItem(db))
		cartGroup.PUT("", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("", cartControllers.RemoveCartItem(db))
	}
}
