package authControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/auth"
	"github.com/Nellmory/MehaAndShubi/config"
	"github.com/Nellmory/MehaAndShubi/mailer"
	"github.com/Nellmory/MehaAndShubi/middleware"
	"github.com/Nellmory/MehaAndShubi/models"
)

type RegisterInput struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LogoutInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

// POST /auth/register
func Register(db *gorm.DB, cfg *config.Config, m mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user with this username already exists"})
			return
		}
		if input.Email != "" {
			if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user with this email already exists"})
				return
			}
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process password"})
			return
		}

		user := models.User{
			Username:  input.Username,
			Email:     input.Email,
			Password:  hash,
			FirstName: input.FirstName,
			LastName:  input.LastName,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}

		tokens, err := auth.IssueTokenPair(cfg.JWTSecret, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
			return
		}

		mailer.SendRegistrationEmail(m, &user)

		c.JSON(http.StatusCreated, gin.H{
			"user":    user.Profile(),
			"tokens":  tokens,
			"message": "user registered successfully",
		})
	}
}

// POST /auth/login
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		var user models.User
		err := db.Where("username = ?", input.Username).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if err != nil || !auth.CheckPassword(user.Password, input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}

		tokens, err := auth.IssueTokenPair(cfg.JWTSecret, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":    user.Profile(),
			"tokens":  tokens,
			"message": "login successful",
		})
	}
}

// GET /auth/profile
func Profile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, user.Profile())
	}
}

// POST /auth/logout
func Logout(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LogoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
			return
		}

		if err := auth.RevokeRefreshToken(db, cfg.JWTSecret, input.Refresh); err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
