package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // payment received
	OrderStatusShipped   OrderStatus = "shipped"   // handed to delivery
	OrderStatusDelivered OrderStatus = "delivered" // terminal
	OrderStatusCancelled OrderStatus = "cancelled" // terminal
)

var orderStatusDisplay = map[OrderStatus]string{
	OrderStatusPending:   "Awaiting payment",
	OrderStatusPaid:      "Paid",
	OrderStatusShipped:   "Shipped",
	OrderStatusDelivered: "Delivered",
	OrderStatusCancelled: "Cancelled",
}

// Display returns the human-readable label for the status.
func (s OrderStatus) Display() string {
	if label, ok := orderStatusDisplay[s]; ok {
		return label
	}
	return string(s)
}

// Order is an immutable purchase snapshot. Only Status changes after
// creation; TotalPrice and the item prices are frozen at order time.
type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user"`
	User            User            `json:"-"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	Phone           string          `gorm:"size:20;not null" json:"phone"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"-"`
	ProductID uint            `gorm:"not null" json:"product"`
	Product   Product         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // price at purchase
}
