package service

import (
	"context"

	"github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
)

type WishlistService interface {
	AddToWishlist(ctx context.Context, userID, gameID int64) (*models.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, gameID int64) error
	GetWishlist(ctx context.Context, userID int64) ([]models.WishlistItem, error)
}

type wishlistService struct {
	repo         repository.WishlistRepository
	gameRepo     repository.GameRepository
	purchaseRepo repository.PurchaseRepository
}

func NewWishlistService(repo repository.WishlistRepository, gameRepo repository.GameRepository, purchaseRepo repository.PurchaseRepository) WishlistService {
	return &wishlistService{
		repo:         repo,
		gameRepo:     gameRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (s *wishlistService) AddToWishlist(ctx context.Context, userID, gameID int64) (*models.WishlistItem, error) {
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

	inWishlist, err := s.repo.IsInWishlist(ctx, userID, gameID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check wishlist").WithError(err)
	}

	if inWishlist {
		return nil, errors.DuplicateEntryError("Game is already in your wishlist")
	}

	item := &models.WishlistItem{
		UserID: userID,
		GameID: gameID,
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, errors.DatabaseError("Failed to add to wishlist").WithError(err)
	}

	item.Game = game

	return item, nil
}

func (s *wishlistService) RemoveFromWishlist(ctx context.Context, userID, gameID int64) error {
	removed, err := s.repo.RemoveItem(ctx, userID, gameID)
	if err != nil {
		return errors.DatabaseError("Failed to remove from wishlist").WithError(err)
	}

	if !removed {
		return errors.NotFoundError("Game is not in your wishlist")
	}

	return nil
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch wishlist").WithError(err)
	}

	return items, nil
}
