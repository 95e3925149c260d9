package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/config"
	orderControllers "github.com/Nellmory/MehaAndShubi/controllers/order"
	"github.com/Nellmory/MehaAndShubi/mailer"
	"github.com/Nellmory/MehaAndShubi/middleware"
)

// SetupOrderRoutes registers the "/order" endpoints. Requires JWT.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, m mailer.Mailer) {
	orderGroup := r.Group("/order")
	orderGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		orderGroup.GET("", orderControllers.ListOrdersHandler(db))
		orderGroup.POST("", orderControllers.PlaceOrderHandler(db, m))
	}
}
