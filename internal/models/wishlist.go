package models

import "time"

type WishlistItem struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	GameID  int64     `json:"game_id"`
	AddedAt time.Time `json:"added_at"`
	Game    *Game     `json:"game,omitempty"`
}
