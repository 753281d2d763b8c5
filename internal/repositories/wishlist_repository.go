package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mistlabs/gamestore/internal/models"
	"github.com/mistlabs/gamestore/internal/utils"
)

type WishlistRepository interface {
	AddItem(ctx context.Context, item *models.WishlistItem) error
	RemoveItem(ctx context.Context, userID, gameID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.WishlistItem, error)
	IsInWishlist(ctx context.Context, userID, gameID int64) (bool, error)
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) AddItem(ctx context.Context, item *models.WishlistItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wishlist_items (user_id, game_id, added_at)
		VALUES ($1, $2, NOW())
		RETURNING id, added_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, item.UserID, item.GameID).Scan(&item.ID, &item.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, gameID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND game_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, userID, gameID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	return deleted > 0, nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT w.id, w.user_id, w.game_id, w.added_at,
		       g.id, g.title, g.description, g.price, g.image_url, g.developer, g.publisher, g.release_date, g.genre, g.is_active, g.created_at
		FROM wishlist_items w
		JOIN games g ON g.id = w.game_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	defer rows.Close()

	var items []models.WishlistItem

	for rows.Next() {
		var item models.WishlistItem
		game := &models.Game{}

		err := rows.Scan(&item.ID, &item.UserID, &item.GameID, &item.AddedAt,
			&game.ID, &game.Title, &game.Description, &game.Price, &game.ImageURL,
			&game.Developer, &game.Publisher, &game.ReleaseDate, &game.Genre,
			&game.IsActive, &game.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}

		item.Game = game
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *wishlistRepository) IsInWishlist(ctx context.Context, userID, gameID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND game_id = $2)`

	if err := r.DB.QueryRowContext(dbCtx, query, userID, gameID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check wishlist membership: %w", err)
	}

	return exists, nil
}
