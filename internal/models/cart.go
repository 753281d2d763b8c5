package models

import "time"

type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Items     []CartItem `json:"items"`
}

type CartItem struct {
	ID        int64     `json:"id"`
	CartID    int64     `json:"cart_id"`
	GameID    int64     `json:"game_id"`
	GameTitle string    `json:"game_title"`
	Price     float64   `json:"price"`
	AddedAt   time.Time `json:"added_at"`
}

// TotalAmount is the sum of the snapshotted item prices.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}

	return total
}

func (c *Cart) ItemCount() int {
	return len(c.Items)
}
