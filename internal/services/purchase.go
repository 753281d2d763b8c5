package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mistlabs/gamestore/internal/api/middleware"
	"github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/metrics"
	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
	"github.com/mistlabs/gamestore/pkg/sendgrid"
)

type PurchaseService interface {
	Checkout(ctx context.Context, userID int64) (*models.CheckoutResult, error)
	ListPurchases(ctx context.Context, userID int64) ([]models.Purchase, error)
	GetLibrary(ctx context.Context, userID int64, req *models.LibrarySearchRequest) ([]*models.Game, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	cartRepo     repository.CartRepository
	userRepo     repository.UserRepository
	wishlistRepo repository.WishlistRepository
	email        sendgrid.EmailService
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	wishlistRepo repository.WishlistRepository,
	email sendgrid.EmailService,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		cartRepo:     cartRepo,
		userRepo:     userRepo,
		wishlistRepo: wishlistRepo,
		email:        email,
	}
}

// Checkout converts the whole cart into purchases in a single transaction.
// Every item is re-validated against the live catalog inside the transaction;
// one failing item aborts the entire checkout and no purchase is recorded.
// Each purchase is charged at the price snapshotted when the item was added.
func (s *purchaseService) Checkout(ctx context.Context, userID int64) (*models.CheckoutResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			metrics.RecordCheckout("empty_cart")

			return nil, errors.EmptyCartError("Your cart is empty")
		}

		metrics.RecordCheckout("error")

		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		metrics.RecordCheckout("empty_cart")

		return nil, errors.EmptyCartError("Your cart is empty")
	}

	tx, err := s.purchaseRepo.BeginCheckout(ctx)
	if err != nil {
		metrics.RecordCheckout("error")

		return nil, errors.DatabaseError("Failed to start checkout").WithError(err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if err := tx.LockCart(ctx, cart.ID); err != nil {
		metrics.RecordCheckout("error")

		return nil, errors.DatabaseError("Failed to lock cart").WithError(err)
	}

	now := time.Now()
	purchases := make([]models.Purchase, 0, len(cart.Items))

	for _, item := range cart.Items {
		owned, err := tx.HasPurchased(ctx, userID, item.GameID)
		if err != nil {
			metrics.RecordCheckout("error")

			return nil, errors.DatabaseError("Failed to check ownership").WithError(err)
		}

		if owned {
			metrics.RecordCheckout("aborted")

			return nil, errors.AlreadyOwnedError(fmt.Sprintf("You already own %q", item.GameTitle))
		}

		game, err := tx.GetGame(ctx, item.GameID)
		if err != nil {
			if err == sql.ErrNoRows {
				metrics.RecordCheckout("aborted")

				return nil, errors.NotFoundError(fmt.Sprintf("%q is no longer in the catalog", item.GameTitle))
			}

			metrics.RecordCheckout("error")

			return nil, errors.DatabaseError("Failed to verify game").WithError(err)
		}

		if !game.IsActive {
			metrics.RecordCheckout("aborted")

			return nil, errors.UnavailableError(fmt.Sprintf("%q is no longer available", game.Title))
		}

		purchase := models.Purchase{
			UserID:       userID,
			GameID:       item.GameID,
			GameTitle:    game.Title,
			PricePaid:    item.Price,
			PurchaseDate: now,
		}

		if err := tx.CreatePurchase(ctx, &purchase); err != nil {
			metrics.RecordCheckout("error")

			return nil, errors.DatabaseError("Failed to record purchase").WithError(err)
		}

		purchases = append(purchases, purchase)
	}

	if err := tx.ClearCartItems(ctx, cart.ID); err != nil {
		metrics.RecordCheckout("error")

		return nil, errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordCheckout("error")

		return nil, errors.DatabaseError("Failed to complete checkout").WithError(err)
	}

	metrics.RecordCheckout("success")
	metrics.RecordPurchases(len(purchases))

	s.afterCheckout(ctx, userID, purchases, logger)

	return &models.CheckoutResult{
		Message:   fmt.Sprintf("Successfully purchased %d game(s)", len(purchases)),
		Purchases: purchases,
	}, nil
}

// afterCheckout runs best-effort follow-ups. Failures are logged, never
// surfaced, since the purchases are already committed.
func (s *purchaseService) afterCheckout(ctx context.Context, userID int64, purchases []models.Purchase, logger *slog.Logger) {
	for _, p := range purchases {
		if _, err := s.wishlistRepo.RemoveItem(ctx, userID, p.GameID); err != nil {
			logger.Warn("Failed to remove purchased game from wishlist",
				slog.Int64("gameId", p.GameID), slog.Any("error", err))
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load user for receipt email", slog.Any("error", err))

		return
	}

	if err := s.email.SendReceipt(ctx, user.Email, user.Username, purchases); err != nil {
		logger.Warn("Failed to send receipt email", slog.Any("error", err))
	}
}

func (s *purchaseService) ListPurchases(ctx context.Context, userID int64) ([]models.Purchase, error) {
	purchases, err := s.purchaseRepo.ListPurchasesByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch purchase history").WithError(err)
	}

	return purchases, nil
}

// GetLibrary lists the user's owned games with optional filtering. Ownership
// is permanent, so deactivated games still show up here.
func (s *purchaseService) GetLibrary(ctx context.Context, userID int64, req *models.LibrarySearchRequest) ([]*models.Game, error) {
	games, err := s.purchaseRepo.ListOwnedGames(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch library").WithError(err)
	}

	if req == nil {
		return games, nil
	}

	term := strings.ToLower(strings.TrimSpace(req.SearchTerm))
	filtered := make([]*models.Game, 0, len(games))

	for _, game := range games {
		if term != "" && !matchesTerm(game, term) {
			continue
		}

		if req.Genre != "" && !strings.EqualFold(game.Genre, req.Genre) {
			continue
		}

		filtered = append(filtered, game)
	}

	switch req.SortBy {
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Title) < strings.ToLower(filtered[j].Title)
		})
	case "genre":
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Genre) < strings.ToLower(filtered[j].Genre)
		})
	default:
		// "recent" is the repository's natural order, newest purchase first.
	}

	return filtered, nil
}
