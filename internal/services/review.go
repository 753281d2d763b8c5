package service

import (
	"context"
	"database/sql"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
)

type ReviewService interface {
	AddReview(ctx context.Context, userID int64, req *models.AddReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID int64, req *models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID int64, isAdmin bool) error
	ListGameReviews(ctx context.Context, gameID int64) ([]models.Review, error)
	GetRatingSummary(ctx context.Context, gameID int64) (*models.RatingSummary, error)
}

type reviewService struct {
	repo         repository.ReviewRepository
	gameRepo     repository.GameRepository
	purchaseRepo repository.PurchaseRepository
	sanitizer    *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository, gameRepo repository.GameRepository, purchaseRepo repository.PurchaseRepository) ReviewService {
	return &reviewService{
		repo:         repo,
		gameRepo:     gameRepo,
		purchaseRepo: purchaseRepo,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

// AddReview lets a user review a game they own, once. Review text is
// sanitized to plain text before storage.
func (s *reviewService) AddReview(ctx context.Context, userID int64, req *models.AddReviewRequest) (*models.Review, error) {
	if _, err := s.gameRepo.GetGameByID(ctx, req.GameID); err != nil {
		return nil, errors.NotFoundError("Game not found").WithError(err)
	}

	owned, err := s.purchaseRepo.HasPurchased(ctx, userID, req.GameID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check ownership").WithError(err)
	}

	if !owned {
		return nil, errors.ForbiddenError("You can only review games you own")
	}

	if _, err := s.repo.GetUserReview(ctx, userID, req.GameID); err == nil {
		return nil, errors.DuplicateEntryError("You have already reviewed this game")
	} else if err != sql.ErrNoRows {
		return nil, errors.DatabaseError("Failed to check existing review").WithError(err)
	}

	review := &models.Review{
		UserID:             userID,
		GameID:             req.GameID,
		Rating:             req.Rating,
		Title:              s.sanitizer.Sanitize(req.Title),
		Content:            s.sanitizer.Sanitize(req.Content),
		IsVerifiedPurchase: true,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, errors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID int64, req *models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, errors.NotFoundError("Review not found").WithError(err)
	}

	if review.UserID != userID {
		return nil, errors.ForbiddenError("You can only edit your own reviews")
	}

	review.Rating = req.Rating
	review.Title = s.sanitizer.Sanitize(req.Title)
	review.Content = s.sanitizer.Sanitize(req.Content)

	if err := s.repo.UpdateReview(ctx, review); err != nil {
		return nil, errors.DatabaseError("Failed to update review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID int64, isAdmin bool) error {
	review, err := s.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return errors.NotFoundError("Review not found").WithError(err)
	}

	if review.UserID != userID && !isAdmin {
		return errors.ForbiddenError("You can only delete your own reviews")
	}

	deleted, err := s.repo.DeleteReview(ctx, reviewID)
	if err != nil {
		return errors.DatabaseError("Failed to delete review").WithError(err)
	}

	if !deleted {
		return errors.NotFoundError("Review not found")
	}

	return nil
}

func (s *reviewService) ListGameReviews(ctx context.Context, gameID int64) ([]models.Review, error) {
	reviews, err := s.repo.ListGameReviews(ctx, gameID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	return reviews, nil
}

func (s *reviewService) GetRatingSummary(ctx context.Context, gameID int64) (*models.RatingSummary, error) {
	summary, err := s.repo.RatingSummary(ctx, gameID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to compute rating summary").WithError(err)
	}

	return summary, nil
}
