package authControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/auth"
	"github.com/Nellmory/MehaAndShubi/config"
)

// POST /telegram/auth
// The Telegram login widget posts its fields form-encoded; the whole
// payload participates in the signature, so it is collected as-is.
func TelegramAuth(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
			return
		}

		data := make(map[string]string, len(c.Request.PostForm))
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				data[key] = values[0]
			}
		}

		if err := auth.VerifyTelegramAuth(data, cfg.TelegramBotToken, time.Now()); err != nil {
			// Signature and freshness failures share the status; the
			// message tells them apart.
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		user, err := auth.GetOrCreateTelegramUser(db, data)
		if err != nil {
			// Resolution failures are server faults, not bad credentials.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}

		tokens, err := auth.IssueTokenPair(cfg.JWTSecret, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user": gin.H{
				"id":          user.ID,
				"username":    user.Username,
				"first_name":  user.FirstName,
				"last_name":   user.LastName,
				"telegram_id": data["id"],
			},
			"tokens": tokens,
		})
	}
}
