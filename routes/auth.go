package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/config"
	authControllers "github.com/Nellmory/MehaAndShubi/controllers/auth"
	"github.com/Nellmory/MehaAndShubi/mailer"
	"github.com/Nellmory/MehaAndShubi/middleware"
)

// SetupAuthRoutes registers the "/auth/*" endpoints and the Telegram
// login callback.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, m mailer.Mailer) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(db, cfg, m))
		authGroup.POST("/login", authControllers.Login(db, cfg))

		protected := authGroup.Group("")
		protected.Use(middleware.ValidateToken(cfg.JWTSecret))
		{
			protected.GET("/profile", authControllers.Profile(db))
			protected.POST("/logout", authControllers.Logout(db, cfg))
		}
	}

	r.POST("/telegram/auth", authControllers.TelegramAuth(db, cfg))
}
