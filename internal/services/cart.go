package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/metrics"
	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	AddToCart(ctx context.Context, userID, gameID int64) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, userID, gameID int64) (*models.Cart, error)
	ClearCart(ctx context.Context, userID int64) (*models.Cart, error)
	ItemCount(ctx context.Context, userID int64) (int, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	gameRepo     repository.GameRepository
	purchaseRepo repository.PurchaseRepository
}

func NewCartService(cartRepo repository.CartRepository, gameRepo repository.GameRepository, purchaseRepo repository.PurchaseRepository) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		gameRepo:     gameRepo,
		purchaseRepo: purchaseRepo,
	}
}

// GetCart returns the user's cart, creating an empty one on first use.
func (s *cartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			cart, err = s.cartRepo.CreateCart(ctx, userID)
			if err != nil {
				return nil, errors.DatabaseError("Failed to create cart").WithError(err)
			}

			return cart, nil
		}

		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

// AddToCart snapshots the game's current price into the cart item. The price
// shown at checkout is the price captured here, not the live catalog price.
func (s *cartService) AddToCart(ctx context.Context, userID, gameID int64) (*models.Cart, error) {
	game, err := s.gameRepo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, errors.NotFoundError("Game not found").WithError(err)
	}

	if !game.IsActive {
		return nil, errors.UnavailableError("Game is no longer available")
	}

	owned, err := s.purchaseRepo.HasPurchased(ctx, userID, gameID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check ownership").WithError(err)
	}

	if owned {
		return nil, errors.AlreadyOwnedError("You already own this game")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	inCart, err := s.cartRepo.IsGameInCart(ctx, userID, gameID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check cart").WithError(err)
	}

	if inCart {
		return nil, errors.AlreadyInCartError("Game is already in your cart")
	}

	item := &models.CartItem{
		CartID: cart.ID,
		GameID: gameID,
		Price:  game.CurrentPrice(time.Now()),
	}

	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	if err := s.cartRepo.TouchCart(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	metrics.RecordCartOperation("add")

	return s.reload(ctx, userID)
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID, gameID int64) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	removed, err := s.cartRepo.RemoveItem(ctx, cart.ID, gameID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to remove item from cart").WithError(err)
	}

	if !removed {
		return nil, errors.NotFoundError("Game is not in your cart")
	}

	if err := s.cartRepo.TouchCart(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	metrics.RecordCartOperation("remove")

	return s.reload(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID int64) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.EmptyCartError("Your cart is already empty")
		}

		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cleared, err := s.cartRepo.ClearItems(ctx, cart.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	if cleared == 0 {
		return nil, errors.EmptyCartError("Your cart is already empty")
	}

	if err := s.cartRepo.TouchCart(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	metrics.RecordCartOperation("clear")

	return s.reload(ctx, userID)
}

func (s *cartService) ItemCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.cartRepo.ItemCount(ctx, userID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count cart items").WithError(err)
	}

	return count, nil
}

func (s *cartService) reload(ctx context.Context, userID int64) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}
