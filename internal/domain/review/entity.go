// internal/domain/review/entity.go
package review

import "time"

// Review is one customer review of a product
type Review struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"productId"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stats aggregates the reviews of one product
type Stats struct {
	ProductID     uint        `json:"productId"`
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	Distribution  map[int]int `json:"distribution"`
}

// CreateRequest represents a new review submission
type CreateRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Title     string `json:"title"`
	Comment   string `json:"comment" binding:"required"`
}

// UpdateRequest represents an edit to an existing review
type UpdateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Comment string `json:"comment" binding:"required"`
}
