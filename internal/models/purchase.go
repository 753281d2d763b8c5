package models

import "time"

// Purchase is an immutable record of a completed sale. Its existence defines
// game ownership for the (user, game) pair.
type Purchase struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	GameID       int64     `json:"game_id"`
	GameTitle    string    `json:"game_title,omitempty"`
	PricePaid    float64   `json:"price_paid"`
	PurchaseDate time.Time `json:"purchase_date"`
}

type CheckoutResult struct {
	Message   string     `json:"message"`
	Purchases []Purchase `json:"purchases"`
}

// LibrarySearchRequest filters a user's owned games.
type LibrarySearchRequest struct {
	SearchTerm string `json:"search_term,omitempty"`
	Genre      string `json:"genre,omitempty"`
	SortBy     string `json:"sort_by,omitempty" validate:"omitempty,oneof=recent name genre"`
}
