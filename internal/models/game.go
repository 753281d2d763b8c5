package models

import "time"

type Game struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	ImageURL    string      `json:"image_url"`
	Developer   string      `json:"developer"`
	Publisher   string      `json:"publisher"`
	ReleaseDate time.Time   `json:"release_date"`
	Genre       string      `json:"genre"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	Promotions  []Promotion `json:"promotions,omitempty"`
}

// ActivePromotion returns the promotion that yields the lowest discounted
// price among those valid at the given instant. Ties are broken by earliest
// start date, then by lowest id, so the result does not depend on the order
// promotions were loaded in.
func (g *Game) ActivePromotion(now time.Time) *Promotion {
	var best *Promotion

	for i := range g.Promotions {
		p := &g.Promotions[i]
		if !p.ValidAt(now) {
			continue
		}

		if best == nil {
			best = p
			continue
		}

		bestPrice := best.Apply(g.Price)
		price := p.Apply(g.Price)

		switch {
		case price < bestPrice:
			best = p
		case price == bestPrice && p.StartDate.Before(best.StartDate):
			best = p
		case price == bestPrice && p.StartDate.Equal(best.StartDate) && p.ID < best.ID:
			best = p
		}
	}

	return best
}

// CurrentPrice is the game's base price after applying the active promotion,
// if any. Never negative.
func (g *Game) CurrentPrice(now time.Time) float64 {
	if p := g.ActivePromotion(now); p != nil {
		return p.Apply(g.Price)
	}

	return g.Price
}

func (g *Game) HasActivePromotion(now time.Time) bool {
	return g.ActivePromotion(now) != nil
}

type CreateGameRequest struct {
	Title       string    `json:"title" validate:"required,max=100"`
	Description string    `json:"description" validate:"required,max=2000"`
	Price       float64   `json:"price" validate:"required,gt=0,lte=999.99"`
	ImageURL    string    `json:"image_url,omitempty"`
	Developer   string    `json:"developer,omitempty" validate:"omitempty,max=100"`
	Publisher   string    `json:"publisher,omitempty" validate:"omitempty,max=100"`
	ReleaseDate time.Time `json:"release_date,omitempty"`
	Genre       string    `json:"genre,omitempty" validate:"omitempty,max=50"`
}

type UpdateGameRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gt=0,lte=999.99"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Developer   *string    `json:"developer,omitempty" validate:"omitempty,max=100"`
	Publisher   *string    `json:"publisher,omitempty" validate:"omitempty,max=100"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Genre       *string    `json:"genre,omitempty" validate:"omitempty,max=50"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// GameSearchRequest mirrors the storefront search form. Price bounds apply to
// the current (possibly discounted) price, not the base price.
type GameSearchRequest struct {
	SearchTerm         string   `json:"search_term,omitempty"`
	Genre              string   `json:"genre,omitempty"`
	Developer          string   `json:"developer,omitempty"`
	MinPrice           *float64 `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice           *float64 `json:"max_price,omitempty" validate:"omitempty,gte=0"`
	SortBy             string   `json:"sort_by,omitempty" validate:"omitempty,oneof=newest price-asc price-desc name"`
	OnlyWithPromotions bool     `json:"only_with_promotions,omitempty"`
}

// GameView is the API shape of a game enriched with the computed price.
type GameView struct {
	Game
	CurrentPrice float64 `json:"current_price"`
	OnPromotion  bool    `json:"on_promotion"`
}

func NewGameView(g *Game, now time.Time) *GameView {
	return &GameView{
		Game:         *g,
		CurrentPrice: g.CurrentPrice(now),
		OnPromotion:  g.HasActivePromotion(now),
	}
}
