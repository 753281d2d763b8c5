package service_test

import (
	"context"
	"database/sql"
	"testing"

	appErrors "github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/models"
	service "github.com/mistlabs/gamestore/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	req := &models.AddReviewRequest{
		GameID:  42,
		Rating:  5,
		Title:   "Loved it",
		Content: "Best racing game this year.",
	}

	t.Run("Success - Sanitizes Markup", func(t *testing.T) {
		reviewRepo := new(mockReviewRepo)
		gameRepo := new(mockGameRepo)
		purchaseRepo := new(mockPurchaseRepo)
		svc := service.NewReviewService(reviewRepo, gameRepo, purchaseRepo)

		gameRepo.On("GetGameByID", ctx, int64(42)).Return(activeGame(42, 40), nil).Once()
		purchaseRepo.On("HasPurchased", ctx, userID, int64(42)).Return(true, nil).Once()
		reviewRepo.On("GetUserReview", ctx, userID, int64(42)).Return(nil, sql.ErrNoRows).Once()
		reviewRepo.On("CreateReview", ctx, mock.AnythingOfType("*models.Review")).Return(nil).Once()

		spicy := &models.AddReviewRequest{
			GameID:  42,
			Rating:  5,
			Title:   "Loved it",
			Content: "Great game <script>alert('x')</script>",
		}

		review, err := svc.AddReview(ctx, userID, spicy)

		require.NoError(t, err)
		assert.True(t, review.IsVerifiedPurchase)
		assert.NotContains(t, review.Content, "<script>")
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - Game Not Found", func(t *testing.T) {
		gameRepo := new(mockGameRepo)
		svc := service.NewReviewService(new(mockReviewRepo), gameRepo, new(mockPurchaseRepo))

		gameRepo.On("GetGameByID", ctx, int64(42)).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.AddReview(ctx, userID, req)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Not Owned", func(t *testing.T) {
		gameRepo := new(mockGameRepo)
		purchaseRepo := new(mockPurchaseRepo)
		svc := service.NewReviewService(new(mockReviewRepo), gameRepo, purchaseRepo)

		gameRepo.On("GetGameByID", ctx, int64(42)).Return(activeGame(42, 40), nil).Once()
		purchaseRepo.On("HasPurchased", ctx, userID, int64(42)).Return(false, nil).Once()

		_, err := svc.AddReview(ctx, userID, req)

		assertAppError(t, err, appErrors.ErrCodeForbidden)
	})

	t.Run("Failure - Already Reviewed", func(t *testing.T) {
		reviewRepo := new(mockReviewRepo)
		gameRepo := new(mockGameRepo)
		purchaseRepo := new(mockPurchaseRepo)
		svc := service.NewReviewService(reviewRepo, gameRepo, purchaseRepo)

		gameRepo.On("GetGameByID", ctx, int64(42)).Return(activeGame(42, 40), nil).Once()
		purchaseRepo.On("HasPurchased", ctx, userID, int64(42)).Return(true, nil).Once()
		reviewRepo.On("GetUserReview", ctx, userID, int64(42)).Return(&models.Review{ID: 7}, nil).Once()

		_, err := svc.AddReview(ctx, userID, req)

		assertAppError(t, err, appErrors.ErrCodeDuplicateEntry)
		reviewRepo.AssertNotCalled(t, "CreateReview", ctx, mock.Anything)
	})
}

func TestUpdateReview(t *testing.T) {
	ctx := context.Background()

	req := &models.UpdateReviewRequest{Rating: 3, Title: "Revised", Content: "Patch changed my mind."}

	t.Run("Success - Author Edits Own Review", func(t *testing.T) {
		reviewRepo := new(mockReviewRepo)
		svc := service.NewReviewService(reviewRepo, new(mockGameRepo), new(mockPurchaseRepo))

		reviewRepo.On("GetReviewByID", ctx, int64(7)).Return(&models.Review{ID: 7, UserID: 1, Rating: 5}, nil).Once()
		reviewRepo.On("UpdateReview", ctx, mock.AnythingOfType("*models.Review")).Return(nil).Once()

		review, err := svc.UpdateReview(ctx, 1, 7, req)

		require.NoError(t, err)
		assert.Equal(t, 3, review.Rating)
		assert.Equal(t, "Revised", review.Title)
	})

	t.Run("Failure - Not The Author", func(t *testing.T) {
		reviewRepo := new(mockReviewRepo)
		svc := service.NewReviewService(reviewRepo, new(mockGameRepo), new(mockPurchaseRepo))

		reviewRepo.On("GetReviewByID", ctx, int64(7)).Return(&models.Review{ID: 7, UserID: 2}, nil).Once()

		_, err := svc.UpdateReview(ctx, 1, 7, req)

		assertAppError(t, err, appErrors.ErrCodeForbidden)
		reviewRepo.AssertNotCalled(t, "UpdateReview", ctx, mock.Anything)
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Author", func(t *testing.T) {
		reviewRepo := new(mockReviewRepo)
		svc := service.NewReviewService(reviewRepo, new(mockGameRepo), new(mockPurchaseRepo))

		reviewRepo.On("GetReviewByID", ctx, int64(7)).Return(&models.Review{ID: 7, UserID: 1}, nil).Once()
		reviewRepo.On("DeleteReview", ctx, int64(7)).Return(true, nil).Once()

		err := svc.DeleteReview(ctx, 1, 7, false)

		require.NoError(t, err)
	})

	t.Run("Success - Admin Deletes Someone Else's Review", func(t *testing.T) {
		reviewRepo := new(mockReviewRepo)
		svc := service.NewReviewService(reviewRepo, new(mockGameRepo), new(mockPurchaseRepo))

		reviewRepo.On("GetReviewByID", ctx, int64(7)).Return(&models.Review{ID: 7, UserID: 2}, nil).Once()
		reviewRepo.On("DeleteReview", ctx, int64(7)).Return(true, nil).Once()

		err := svc.DeleteReview(ctx, 99, 7, true)

		require.NoError(t, err)
	})

	t.Run("Failure - Regular User, Not The Author", func(t *testing.T) {
		reviewRepo := new(mockReviewRepo)
		svc := service.NewReviewService(reviewRepo, new(mockGameRepo), new(mockPurchaseRepo))

		reviewRepo.On("GetReviewByID", ctx, int64(7)).Return(&models.Review{ID: 7, UserID: 2}, nil).Once()

		err := svc.DeleteReview(ctx, 1, 7, false)

		assertAppError(t, err, appErrors.ErrCodeForbidden)
		reviewRepo.AssertNotCalled(t, "DeleteReview", ctx, int64(7))
	})
}

func TestAddToWishlist(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)
	gameID := int64(42)

	t.Run("Success", func(t *testing.T) {
		wishlistRepo := new(mockWishlistRepo)
		gameRepo := new(mockGameRepo)
		purchaseRepo := new(mockPurchaseRepo)
		svc := service.NewWishlistService(wishlistRepo, gameRepo, purchaseRepo)

		gameRepo.On("GetGameByID", ctx, gameID).Return(activeGame(gameID, 40), nil).Once()
		purchaseRepo.On("HasPurchased", ctx, userID, gameID).Return(false, nil).Once()
		wishlistRepo.On("IsInWishlist", ctx, userID, gameID).Return(false, nil).Once()
		wishlistRepo.On("AddItem", ctx, mock.AnythingOfType("*models.WishlistItem")).Return(nil).Once()

		item, err := svc.AddToWishlist(ctx, userID, gameID)

		require.NoError(t, err)
		assert.NotNil(t, item.Game)
		wishlistRepo.AssertExpectations(t)
	})

	t.Run("Failure - Already Owned", func(t *testing.T) {
		gameRepo := new(mockGameRepo)
		purchaseRepo := new(mockPurchaseRepo)
		svc := service.NewWishlistService(new(mockWishlistRepo), gameRepo, purchaseRepo)

		gameRepo.On("GetGameByID", ctx, gameID).Return(activeGame(gameID, 40), nil).Once()
		purchaseRepo.On("HasPurchased", ctx, userID, gameID).Return(true, nil).Once()

		_, err := svc.AddToWishlist(ctx, userID, gameID)

		assertAppError(t, err, appErrors.ErrCodeAlreadyOwned)
	})

	t.Run("Failure - Already Wishlisted", func(t *testing.T) {
		wishlistRepo := new(mockWishlistRepo)
		gameRepo := new(mockGameRepo)
		purchaseRepo := new(mockPurchaseRepo)
		svc := service.NewWishlistService(wishlistRepo, gameRepo, purchaseRepo)

		gameRepo.On("GetGameByID", ctx, gameID).Return(activeGame(gameID, 40), nil).Once()
		purchaseRepo.On("HasPurchased", ctx, userID, gameID).Return(false, nil).Once()
		wishlistRepo.On("IsInWishlist", ctx, userID, gameID).Return(true, nil).Once()

		_, err := svc.AddToWishlist(ctx, userID, gameID)

		assertAppError(t, err, appErrors.ErrCodeDuplicateEntry)
	})

	t.Run("Failure - Remove Missing Item", func(t *testing.T) {
		wishlistRepo := new(mockWishlistRepo)
		svc := service.NewWishlistService(wishlistRepo, new(mockGameRepo), new(mockPurchaseRepo))

		wishlistRepo.On("RemoveItem", ctx, userID, gameID).Return(false, nil).Once()

		err := svc.RemoveFromWishlist(ctx, userID, gameID)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})
}
