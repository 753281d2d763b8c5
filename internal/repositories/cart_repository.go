package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mistlabs/gamestore/internal/models"
	"github.com/mistlabs/gamestore/internal/utils"
)

type CartRepository interface {
	CreateCart(ctx context.Context, userID int64) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	TouchCart(ctx context.Context, cartID int64) error
	AddItem(ctx context.Context, item *models.CartItem) error
	RemoveItem(ctx context.Context, cartID, gameID int64) (bool, error)
	ClearItems(ctx context.Context, cartID int64) (int64, error)
	ItemCount(ctx context.Context, userID int64) (int, error)
	IsGameInCart(ctx context.Context, userID, gameID int64) (bool, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{UserID: userID}

	query := `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return cart, nil
}

// GetCartByUserID loads the cart with its items in insertion order. Returns
// sql.ErrNoRows when the user has no cart yet.
func (r *cartRepository) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying cart: %w", err)
	}

	itemsQuery := `
		SELECT ci.id, ci.cart_id, ci.game_id, g.title, ci.price, ci.added_at
		FROM cart_items ci
		JOIN games g ON g.id = ci.game_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var item models.CartItem

		err := rows.Scan(&item.ID, &item.CartID, &item.GameID, &item.GameTitle, &item.Price, &item.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cart, nil
}

func (r *cartRepository) TouchCart(ctx context.Context, cartID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE carts SET updated_at = $1 WHERE id = $2`

	_, err := r.DB.ExecContext(dbCtx, query, time.Now(), cartID)
	if err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}

	return nil
}

func (r *cartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, game_id, price, added_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, added_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, item.CartID, item.GameID, item.Price).Scan(&item.ID, &item.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, gameID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE cart_id = $1 AND game_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, cartID, gameID)
	if err != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	return deleted > 0, nil
}

// ClearItems deletes every item in the cart. The cart row itself persists.
func (r *cartRepository) ClearItems(ctx context.Context, cartID int64) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE cart_id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, cartID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart items: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	return deleted, nil
}

func (r *cartRepository) ItemCount(ctx context.Context, userID int64) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*)
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE c.user_id = $1
	`

	var count int

	if err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}

	return count, nil
}

func (r *cartRepository) IsGameInCart(ctx context.Context, userID, gameID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM cart_items ci
			JOIN carts c ON c.id = ci.cart_id
			WHERE c.user_id = $1 AND ci.game_id = $2
		)
	`

	var exists bool

	if err := r.DB.QueryRowContext(dbCtx, query, userID, gameID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cart membership: %w", err)
	}

	return exists, nil
}
