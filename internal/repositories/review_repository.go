package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mistlabs/gamestore/internal/models"
	"github.com/mistlabs/gamestore/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	GetUserReview(ctx context.Context, userID, gameID int64) (*models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id int64) (bool, error)
	ListGameReviews(ctx context.Context, gameID int64) ([]models.Review, error)
	RatingSummary(ctx context.Context, gameID int64) (*models.RatingSummary, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (user_id, game_id, rating, title, content, is_verified_purchase)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		review.UserID, review.GameID, review.Rating, review.Title, review.Content, review.IsVerifiedPurchase,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	review := &models.Review{}

	query := `
		SELECT id, user_id, game_id, rating, title, content, is_verified_purchase, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&review.ID, &review.UserID, &review.GameID, &review.Rating, &review.Title,
		&review.Content, &review.IsVerifiedPurchase, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying review: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) GetUserReview(ctx context.Context, userID, gameID int64) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	review := &models.Review{}

	query := `
		SELECT id, user_id, game_id, rating, title, content, is_verified_purchase, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND game_id = $2
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID, gameID).Scan(
		&review.ID, &review.UserID, &review.GameID, &review.Rating, &review.Title,
		&review.Content, &review.IsVerifiedPurchase, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying review: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE reviews
		SET rating = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		review.Rating, review.Title, review.Content, time.Now(), review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	return deleted > 0, nil
}

func (r *reviewRepository) ListGameReviews(ctx context.Context, gameID int64) ([]models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT r.id, r.user_id, u.username, r.game_id, r.rating, r.title, r.content, r.is_verified_purchase, r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.game_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	var reviews []models.Review

	for rows.Next() {
		var review models.Review

		err := rows.Scan(&review.ID, &review.UserID, &review.Username, &review.GameID,
			&review.Rating, &review.Title, &review.Content, &review.IsVerifiedPurchase,
			&review.CreatedAt, &review.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) RatingSummary(ctx context.Context, gameID int64) (*models.RatingSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	summary := &models.RatingSummary{}

	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE game_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, gameID).Scan(&summary.AverageRating, &summary.ReviewCount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating summary: %w", err)
	}

	return summary, nil
}
