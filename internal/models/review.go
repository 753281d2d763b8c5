package models

import "time"

type Review struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	Username           string     `json:"username,omitempty"`
	GameID             int64      `json:"game_id"`
	Rating             int        `json:"rating"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	IsVerifiedPurchase bool       `json:"is_verified_purchase"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

type AddReviewRequest struct {
	GameID  int64  `json:"game_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,min=3,max=100"`
	Content string `json:"content" validate:"required,min=10,max=1000"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,min=3,max=100"`
	Content string `json:"content" validate:"required,min=10,max=1000"`
}

type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}
