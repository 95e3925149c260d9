package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nellmory/MehaAndShubi/middleware"
	"github.com/Nellmory/MehaAndShubi/models"
)

// ErrItemNotFound covers both a missing item and an item that belongs to
// another user's cart; callers cannot tell the two apart.
var ErrItemNotFound = errors.New("cart item not found")

type AddItemInput struct {
	ProductID uint `json:"product" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateItemInput struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type RemoveItemInput struct {
	ItemID uint `json:"item_id" binding:"required"`
}

// -------- Core Logic --------

// GetOrCreateCart returns the user's cart with items and products
// loaded, creating an empty cart on first access. The conflict-tolerant
// insert keeps concurrent first access from creating two carts.
func GetOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	stub := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&stub).Error; err != nil {
		return nil, err
	}
	return loadCart(db, userID)
}

// AddItem merges quantity into the (cart, product) line: an existing
// line is incremented, a missing one created, in a single upsert so
// concurrent adds never lose an increment.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (*models.Cart, error) {
	var product models.Product
	if err := db.Where("is_active = ?", true).First(&product, productID).Error; err != nil {
		return nil, err
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  quantity,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error; err != nil {
		return nil, err
	}

	return loadCart(db, userID)
}

// SetItemQuantity overwrites the line's quantity (replace, not merge).
// The item is looked up scoped to the caller's cart, so a foreign item
// reads as not found.
func SetItemQuantity(db *gorm.DB, userID, itemID uint, quantity int) (*models.Cart, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	res := db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cart.ID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return loadCart(db, userID)
}

// RemoveItem deletes the line scoped to the caller's cart.
func RemoveItem(db *gorm.DB, userID, itemID uint) (*models.Cart, error) {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	res := db.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return loadCart(db, userID)
}

func loadCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// -------- Responses --------

type CartItemResponse struct {
	ID           uint            `json:"id"`
	Product      uint            `json:"product"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type CartResponse struct {
	ID         uint               `json:"id"`
	User       uint               `json:"user"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	TotalItems int                `json:"total_items"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NewCartResponse derives the wire shape, recomputing the totals from
// the lines at hand.
func NewCartResponse(cart *models.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		line := &cart.Items[i]
		items = append(items, CartItemResponse{
			ID:           line.ID,
			Product:      line.ProductID,
			ProductName:  line.Product.Name,
			ProductPrice: line.Product.Price,
			Quantity:     line.Quantity,
			TotalPrice:   line.TotalPrice(),
		})
	}
	return CartResponse{
		ID:         cart.ID,
		User:       cart.UserID,
		Items:      items,
		TotalPrice: cart.TotalPrice(),
		TotalItems: cart.TotalItems(),
		CreatedAt:  cart.CreatedAt,
	}
}

// -------- Handlers --------

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, NewCartResponse(cart))
	}
}

// POST /cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		cart, err := AddItem(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, NewCartResponse(cart))
	}
}

// PUT /cart
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		cart, err := SetItemQuantity(db, userID, input.ItemID, input.Quantity)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, NewCartResponse(cart))
	}
}

// DELETE /cart
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input RemoveItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		cart, err := RemoveItem(db, userID, input.ItemID)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove cart item"})
			return
		}
		c.JSON(http.StatusOK, NewCartResponse(cart))
	}
}
