package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string            `gorm:"size:200;not null" json:"name"`
	Slug            string            `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description     string            `gorm:"type:text" json:"description"`
	Price           decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID      uint              `gorm:"not null;index" json:"category"`
	Category        Category          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Characteristics datatypes.JSONMap `json:"characteristics"`
	Stock           int               `gorm:"default:0" json:"stock"`
	IsActive        bool              `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
}
