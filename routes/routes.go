package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/config"
	"github.com/Nellmory/MehaAndShubi/mailer"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, m mailer.Mailer) {
	// Public auth + the Telegram handshake
	SetupAuthRoutes(r, db, cfg, m)

	// Public catalog reads
	SetupCatalogRoutes(r, db)

	// JWT-protected cart and order endpoints
	SetupCartRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg, m)
}
