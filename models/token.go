package models

import "time"

// RevokedToken blacklists a refresh token by its jti until it would have
// expired anyway. Consulted on logout so a revoked token cannot be
// revoked (or used) twice.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	JTI       string    `gorm:"size:36;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
