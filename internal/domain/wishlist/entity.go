// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a saved product on the user's wishlist
type Item struct {
	ID              uint            `json:"id"`
	ProductID       uint            `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductImageURL string          `json:"productImageUrl"`
	Price           decimal.Decimal `json:"price"`
	InStock         bool            `json:"inStock"`
	AddedAt         time.Time       `json:"addedAt"`
}

// Wishlist is the user's full saved list
type Wishlist struct {
	Items []Item `json:"items"`
}

// Empty returns a wishlist with no items
func Empty() Wishlist {
	return Wishlist{Items: []Item{}}
}

// Contains reports whether the product is on the list
func (w Wishlist) Contains(productID uint) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
