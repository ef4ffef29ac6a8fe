// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
)

// CartItem represents one purchase line. All monetary amounts and the line
// total come from the commerce API, the gateway never recomputes them.
type CartItem struct {
	ID              uint             `json:"id"`
	ProductID       uint             `json:"productId"`
	ProductName     string           `json:"productName"`
	ProductImageURL string           `json:"productImageUrl,omitempty"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	SalePrice       *decimal.Decimal `json:"salePrice,omitempty"`
	Quantity        int              `json:"quantity"`
	TotalPrice      decimal.Decimal  `json:"totalPrice"`
	StockQuantity   int              `json:"stockQuantity"`
}

// Cart is the server-authoritative cart for the current user
type Cart struct {
	Items      []CartItem      `json:"items"`
	SubTotal   decimal.Decimal `json:"subTotal"`
	TotalItems int             `json:"totalItems"`
}

// Empty returns the empty cart value
func Empty() Cart {
	return Cart{
		Items:      []CartItem{},
		SubTotal:   decimal.Zero,
		TotalItems: 0,
	}
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemByProductID returns the line holding productID, if any
func (c Cart) ItemByProductID(productID uint) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// ItemByID returns the line with the given cart item id, if any
func (c Cart) ItemByID(itemID uint) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}
