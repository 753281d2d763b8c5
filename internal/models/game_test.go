package models_test

import (
	"testing"
	"time"

	"github.com/mistlabs/gamestore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promo(id int64, start time.Time, discountType models.DiscountType, value float64) models.Promotion {
	return models.Promotion{
		ID:            id,
		DiscountType:  discountType,
		DiscountValue: value,
		StartDate:     start,
		EndDate:       start.Add(30 * 24 * time.Hour),
		IsActive:      true,
	}
}

func TestActivePromotion(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	t.Run("No Promotions", func(t *testing.T) {
		game := &models.Game{Price: 59.99}
		assert.Nil(t, game.ActivePromotion(now))
		assert.InDelta(t, 59.99, game.CurrentPrice(now), 0.0001)
		assert.False(t, game.HasActivePromotion(now))
	})

	t.Run("Expired Promotion Is Ignored", func(t *testing.T) {
		expired := promo(1, now.Add(-60*24*time.Hour), models.DiscountPercentage, 50)
		game := &models.Game{Price: 40, Promotions: []models.Promotion{expired}}

		assert.Nil(t, game.ActivePromotion(now))
		assert.InDelta(t, 40.0, game.CurrentPrice(now), 0.0001)
	})

	t.Run("Deepest Discount Wins", func(t *testing.T) {
		small := promo(1, monthAgo, models.DiscountPercentage, 10)
		big := promo(2, weekAgo, models.DiscountPercentage, 50)
		game := &models.Game{Price: 40, Promotions: []models.Promotion{small, big}}

		best := game.ActivePromotion(now)
		require.NotNil(t, best)
		assert.Equal(t, int64(2), best.ID)
		assert.InDelta(t, 20.0, game.CurrentPrice(now), 0.0001)
	})

	t.Run("Equal Price Breaks Tie On Earlier Start", func(t *testing.T) {
		later := promo(1, weekAgo, models.DiscountPercentage, 25)
		earlier := promo(2, monthAgo, models.DiscountFixed, 10)
		game := &models.Game{Price: 40, Promotions: []models.Promotion{later, earlier}}

		best := game.ActivePromotion(now)
		require.NotNil(t, best)
		assert.Equal(t, int64(2), best.ID)
	})

	t.Run("Identical Promotions Break Tie On Lowest ID", func(t *testing.T) {
		a := promo(7, weekAgo, models.DiscountPercentage, 25)
		b := promo(3, weekAgo, models.DiscountPercentage, 25)
		game := &models.Game{Price: 40, Promotions: []models.Promotion{a, b}}

		best := game.ActivePromotion(now)
		require.NotNil(t, best)
		assert.Equal(t, int64(3), best.ID)
	})

	t.Run("Result Independent Of Load Order", func(t *testing.T) {
		first := promo(1, monthAgo, models.DiscountPercentage, 30)
		second := promo(2, weekAgo, models.DiscountFixed, 5)

		forward := &models.Game{Price: 50, Promotions: []models.Promotion{first, second}}
		backward := &models.Game{Price: 50, Promotions: []models.Promotion{second, first}}

		assert.Equal(t, forward.ActivePromotion(now).ID, backward.ActivePromotion(now).ID)
		assert.InDelta(t, forward.CurrentPrice(now), backward.CurrentPrice(now), 0.0001)
	})
}

func TestCartTotals(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{GameID: 1, Price: 19.99},
			{GameID: 2, Price: 0},
			{GameID: 3, Price: 45.50},
		},
	}

	assert.InDelta(t, 65.49, cart.TotalAmount(), 0.0001)
	assert.Equal(t, 3, cart.ItemCount())
}
