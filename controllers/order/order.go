package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nellmory/MehaAndShubi/mailer"
	"github.com/Nellmory/MehaAndShubi/middleware"
	"github.com/Nellmory/MehaAndShubi/models"
)

// ErrCartEmpty is the business rule violated when placing an order from
// an empty (or never-created) cart. Clients route the user back to the
// cart on this message.
var ErrCartEmpty = errors.New("cart is empty")

type PlaceOrderInput struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
}

// -------- Core Logic --------

// PlaceOrder converts the caller's cart into an immutable order
// snapshot: one order row, one item per cart line copying the current
// product price, then the cart is cleared. All of it runs in a single
// transaction; a failure anywhere rolls the whole conversion back.
func PlaceOrder(db *gorm.DB, userID uint, shippingAddress, phone string) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartEmpty
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		productIDs := make([]uint, 0, len(cart.Items))
		for _, line := range cart.Items {
			productIDs = append(productIDs, line.ProductID)
		}

		// Pin the product rows for the duration of the snapshot so a
		// concurrent price change cannot split the total from the item
		// prices. SQLite has no row locks; its writer lock covers us
		// in tests.
		q := tx.Where("id IN ?", productIDs)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var products []models.Product
		if err := q.Find(&products).Error; err != nil {
			return err
		}
		priceByID := make(map[uint]decimal.Decimal, len(products))
		for _, p := range products {
			priceByID[p.ID] = p.Price
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			price, ok := priceByID[line.ProductID]
			if !ok {
				return fmt.Errorf("product %d referenced by cart no longer exists", line.ProductID)
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			})
		}

		order = models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			TotalPrice:      total,
			ShippingAddress: shippingAddress,
			Phone:           phone,
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the user's orders newest first, items included.
func ListOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// -------- Responses --------

type OrderItemResponse struct {
	ID          uint            `json:"id"`
	Product     uint            `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID              uint                `json:"id"`
	User            uint                `json:"user"`
	Status          models.OrderStatus  `json:"status"`
	StatusDisplay   string              `json:"status_display"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	ShippingAddress string              `json:"shipping_address"`
	Phone           string              `json:"phone"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

func NewOrderResponse(order *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for i := range order.Items {
		line := &order.Items[i]
		items = append(items, OrderItemResponse{
			ID:          line.ID,
			Product:     line.ProductID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}
	return OrderResponse{
		ID:              order.ID,
		User:            order.UserID,
		Status:          order.Status,
		StatusDisplay:   order.Status.Display(),
		TotalPrice:      order.TotalPrice,
		ShippingAddress: order.ShippingAddress,
		Phone:           order.Phone,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

// -------- Handlers --------

// POST /order
func PlaceOrderHandler(db *gorm.DB, m mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, input.ShippingAddress, input.Phone)
		if err != nil {
			if errors.Is(err, ErrCartEmpty) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			return
		}

		// Reload with product names for the response and the email.
		var placed models.Order
		if err := db.Preload("Items.Product").Preload("User").First(&placed, order.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
			return
		}

		mailer.SendOrderConfirmationEmail(m, &placed.User, &placed)

		c.JSON(http.StatusCreated, NewOrderResponse(&placed))
	}
}

// GET /order
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orders, err := ListOrders(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}

		out := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			out = append(out, NewOrderResponse(&orders[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}
