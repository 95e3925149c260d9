package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/models"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned when a token cannot be parsed, has the
// wrong type, or has already been revoked.
var ErrInvalidToken = errors.New("invalid token")

// TokenPair is the bearer-session pair issued on every successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IssueTokenPair signs a fresh access+refresh pair for the user.
func IssueTokenPair(secret string, userID uint) (TokenPair, error) {
	access, err := signToken(secret, userID, tokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := signToken(secret, userID, tokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func signToken(secret string, userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenType,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates an access token and returns the user id it
// was issued for.
func ParseAccessToken(secret, tokenString string) (uint, error) {
	claims, err := parseToken(secret, tokenString, tokenTypeAccess)
	if err != nil {
		return 0, err
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

// RevokeRefreshToken blacklists the refresh token's jti. It returns
// ErrInvalidToken for anything that is not a live, unrevoked refresh
// token; a storage failure is surfaced as-is.
func RevokeRefreshToken(db *gorm.DB, secret, tokenString string) error {
	claims, err := parseToken(secret, tokenString, tokenTypeRefresh)
	if err != nil {
		return err
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return ErrInvalidToken
	}

	var revoked int64
	if err := db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&revoked).Error; err != nil {
		return err
	}
	if revoked > 0 {
		return ErrInvalidToken
	}
	return db.Create(&models.RevokedToken{
		JTI:       jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}).Error
}

func parseToken(secret, tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims["token_type"] != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
