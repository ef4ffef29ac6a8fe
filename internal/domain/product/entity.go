// internal/domain/product/entity.go
package product

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog entry as the commerce API serves it
type Product struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	ImageURL      string           `json:"imageUrl"`
	StockQuantity int              `json:"stockQuantity"`
	CategoryID    uint             `json:"categoryId"`
	CategoryName  string           `json:"categoryName"`
	IsFeatured    bool             `json:"isFeatured"`
	AverageRating float64          `json:"averageRating"`
	ReviewCount   int              `json:"reviewCount"`
}

// EffectivePrice is the price the cart will charge
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}

// InStock reports whether the product can be added to a cart
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// Category groups products in the catalog
type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListFilter narrows a catalog listing
type ListFilter struct {
	CategoryID uint   `form:"categoryId"`
	Search     string `form:"search"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
	SortBy     string `form:"sortBy"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// ListResult is one page of the catalog
type ListResult struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}
