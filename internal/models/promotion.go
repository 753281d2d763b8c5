package models

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed_amount"
)

type Promotion struct {
	ID            int64        `json:"id"`
	GameID        int64        `json:"game_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
}

// ValidAt reports whether the promotion applies at the given instant. Both
// window boundaries are inclusive.
func (p *Promotion) ValidAt(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// Apply returns the discounted price for the given base price. The result is
// clamped at zero for fixed-amount discounts; a 100% discount yields exactly 0.
func (p *Promotion) Apply(basePrice float64) float64 {
	if p.DiscountType == DiscountPercentage {
		return basePrice * (1 - p.DiscountValue/100)
	}

	return max(0, basePrice-p.DiscountValue)
}

type CreatePromotionRequest struct {
	GameID        int64        `json:"game_id" validate:"required"`
	Name          string       `json:"name" validate:"required,max=100"`
	Description   string       `json:"description,omitempty" validate:"omitempty,max=500"`
	DiscountType  DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed_amount"`
	DiscountValue float64      `json:"discount_value" validate:"required,gt=0"`
	StartDate     time.Time    `json:"start_date" validate:"required"`
	EndDate       time.Time    `json:"end_date" validate:"required"`
}

type UpdatePromotionRequest struct {
	Name          *string       `json:"name,omitempty" validate:"omitempty,max=100"`
	Description   *string       `json:"description,omitempty" validate:"omitempty,max=500"`
	DiscountType  *DiscountType `json:"discount_type,omitempty" validate:"omitempty,oneof=percentage fixed_amount"`
	DiscountValue *float64      `json:"discount_value,omitempty" validate:"omitempty,gt=0"`
	StartDate     *time.Time    `json:"start_date,omitempty"`
	EndDate       *time.Time    `json:"end_date,omitempty"`
	IsActive      *bool         `json:"is_active,omitempty"`
}
