package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mistlabs/gamestore/internal/models"
	"github.com/mistlabs/gamestore/internal/utils"
)

type PromotionRepository interface {
	CreatePromotion(ctx context.Context, promotion *models.Promotion) error
	GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, promotion *models.Promotion) error
	DeletePromotion(ctx context.Context, id int64) (bool, error)
	ListPromotions(ctx context.Context) ([]models.Promotion, error)
	CountActivePromotions(ctx context.Context, now time.Time) (int, error)
}

type promotionRepository struct {
	DB *sql.DB
}

func NewPromotionRepo(db *sql.DB) PromotionRepository {
	return &promotionRepository{DB: db}
}

func (r *promotionRepository) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO promotions (game_id, name, description, discount_type, discount_value, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		promotion.GameID, promotion.Name, promotion.Description, promotion.DiscountType,
		promotion.DiscountValue, promotion.StartDate, promotion.EndDate, promotion.IsActive,
	).Scan(&promotion.ID, &promotion.CreatedAt)
}

func (r *promotionRepository) GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	p := &models.Promotion{}

	query := `
		SELECT id, game_id, name, description, discount_type, discount_value, start_date, end_date, is_active, created_at
		FROM promotions
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&p.ID, &p.GameID, &p.Name, &p.Description, &p.DiscountType,
		&p.DiscountValue, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying promotion: %w", err)
	}

	return p, nil
}

func (r *promotionRepository) UpdatePromotion(ctx context.Context, promotion *models.Promotion) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE promotions
		SET name = $1, description = $2, discount_type = $3, discount_value = $4,
		    start_date = $5, end_date = $6, is_active = $7
		WHERE id = $8
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		promotion.Name, promotion.Description, promotion.DiscountType, promotion.DiscountValue,
		promotion.StartDate, promotion.EndDate, promotion.IsActive, promotion.ID)
	if err != nil {
		return fmt.Errorf("failed to update promotion: %w", err)
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

func (r *promotionRepository) DeletePromotion(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete promotion: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	return deleted > 0, nil
}

func (r *promotionRepository) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, game_id, name, description, discount_type, discount_value, start_date, end_date, is_active, created_at
		FROM promotions
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	defer rows.Close()

	var promotions []models.Promotion

	for rows.Next() {
		var p models.Promotion

		err := rows.Scan(&p.ID, &p.GameID, &p.Name, &p.Description, &p.DiscountType,
			&p.DiscountValue, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}

		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return promotions, nil
}

func (r *promotionRepository) CountActivePromotions(ctx context.Context, now time.Time) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*)
		FROM promotions
		WHERE is_active = TRUE AND start_date <= $1 AND end_date >= $1
	`

	var count int

	if err := r.DB.QueryRowContext(dbCtx, query, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active promotions: %w", err)
	}

	return count, nil
}
