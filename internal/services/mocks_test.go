package service_test

import (
	"context"
	"time"

	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateGame(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)

	return args.Error(0)
}

func (m *mockGameRepo) GetGameByID(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if game, ok := args.Get(0).(*models.Game); ok {
		return game, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockGameRepo) UpdateGame(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)

	return args.Error(0)
}

func (m *mockGameRepo) SetGameActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)

	return args.Error(0)
}

func (m *mockGameRepo) ListActiveGames(ctx context.Context) ([]*models.Game, error) {
	args := m.Called(ctx)
	if games, ok := args.Get(0).([]*models.Game); ok {
		return games, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) CreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartRepo) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartRepo) TouchCart(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

func (m *mockCartRepo) AddItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, cartID, gameID int64) (bool, error) {
	args := m.Called(ctx, cartID, gameID)

	return args.Bool(0), args.Error(1)
}

func (m *mockCartRepo) ClearItems(ctx context.Context, cartID int64) (int64, error) {
	args := m.Called(ctx, cartID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCartRepo) ItemCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

func (m *mockCartRepo) IsGameInCart(ctx context.Context, userID, gameID int64) (bool, error) {
	args := m.Called(ctx, userID, gameID)

	return args.Bool(0), args.Error(1)
}

type mockPurchaseRepo struct {
	mock.Mock
}

func (m *mockPurchaseRepo) HasPurchased(ctx context.Context, userID, gameID int64) (bool, error) {
	args := m.Called(ctx, userID, gameID)

	return args.Bool(0), args.Error(1)
}

func (m *mockPurchaseRepo) ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error) {
	args := m.Called(ctx, userID)
	if purchases, ok := args.Get(0).([]models.Purchase); ok {
		return purchases, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPurchaseRepo) ListOwnedGames(ctx context.Context, userID int64) ([]*models.Game, error) {
	args := m.Called(ctx, userID)
	if games, ok := args.Get(0).([]*models.Game); ok {
		return games, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPurchaseRepo) BeginCheckout(ctx context.Context) (repository.CheckoutTx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(repository.CheckoutTx); ok {
		return tx, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockCheckoutTx struct {
	mock.Mock
}

func (m *mockCheckoutTx) LockCart(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

func (m *mockCheckoutTx) HasPurchased(ctx context.Context, userID, gameID int64) (bool, error) {
	args := m.Called(ctx, userID, gameID)

	return args.Bool(0), args.Error(1)
}

func (m *mockCheckoutTx) GetGame(ctx context.Context, gameID int64) (*models.Game, error) {
	args := m.Called(ctx, gameID)
	if game, ok := args.Get(0).(*models.Game); ok {
		return game, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCheckoutTx) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	args := m.Called(ctx, purchase)

	return args.Error(0)
}

func (m *mockCheckoutTx) ClearCartItems(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

func (m *mockCheckoutTx) Commit() error {
	args := m.Called()

	return args.Error(0)
}

func (m *mockCheckoutTx) Rollback() error {
	args := m.Called()

	return args.Error(0)
}

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) AddItem(ctx context.Context, item *models.WishlistItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *mockWishlistRepo) RemoveItem(ctx context.Context, userID, gameID int64) (bool, error) {
	args := m.Called(ctx, userID, gameID)

	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepo) ListByUser(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	args := m.Called(ctx, userID)
	if items, ok := args.Get(0).([]models.WishlistItem); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockWishlistRepo) IsInWishlist(ctx context.Context, userID, gameID int64) (bool, error) {
	args := m.Called(ctx, userID, gameID)

	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

type mockRateLimitRepo struct {
	mock.Mock
}

func (m *mockRateLimitRepo) CheckLoginRateLimit(ctx context.Context, login string) (bool, int, int, error) {
	args := m.Called(ctx, login)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)

	return args.Error(0)
}

func (m *mockReviewRepo) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if review, ok := args.Get(0).(*models.Review); ok {
		return review, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockReviewRepo) GetUserReview(ctx context.Context, userID, gameID int64) (*models.Review, error) {
	args := m.Called(ctx, userID, gameID)
	if review, ok := args.Get(0).(*models.Review); ok {
		return review, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockReviewRepo) UpdateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)

	return args.Error(0)
}

func (m *mockReviewRepo) DeleteReview(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListGameReviews(ctx context.Context, gameID int64) ([]models.Review, error) {
	args := m.Called(ctx, gameID)
	if reviews, ok := args.Get(0).([]models.Review); ok {
		return reviews, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockReviewRepo) RatingSummary(ctx context.Context, gameID int64) (*models.RatingSummary, error) {
	args := m.Called(ctx, gameID)
	if summary, ok := args.Get(0).(*models.RatingSummary); ok {
		return summary, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockPromotionRepo struct {
	mock.Mock
}

func (m *mockPromotionRepo) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	args := m.Called(ctx, promotion)

	return args.Error(0)
}

func (m *mockPromotionRepo) GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error) {
	args := m.Called(ctx, id)
	if promotion, ok := args.Get(0).(*models.Promotion); ok {
		return promotion, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPromotionRepo) UpdatePromotion(ctx context.Context, promotion *models.Promotion) error {
	args := m.Called(ctx, promotion)

	return args.Error(0)
}

func (m *mockPromotionRepo) DeletePromotion(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *mockPromotionRepo) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	args := m.Called(ctx)
	if promotions, ok := args.Get(0).([]models.Promotion); ok {
		return promotions, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPromotionRepo) CountActivePromotions(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)

	return args.Int(0), args.Error(1)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendReceipt(ctx context.Context, toEmail, username string, purchases []models.Purchase) error {
	args := m.Called(ctx, toEmail, username, purchases)

	return args.Error(0)
}
