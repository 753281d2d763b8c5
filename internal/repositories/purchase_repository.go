package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mistlabs/gamestore/internal/models"
	"github.com/mistlabs/gamestore/internal/utils"
)

type PurchaseRepository interface {
	HasPurchased(ctx context.Context, userID, gameID int64) (bool, error)
	ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error)
	ListOwnedGames(ctx context.Context, userID int64) ([]*models.Game, error)
	BeginCheckout(ctx context.Context) (CheckoutTx, error)
}

// CheckoutTx is the unit of work for one checkout attempt. Every method runs
// inside the same serializable database transaction; Rollback after a
// successful Commit is a no-op, so callers can defer it unconditionally.
type CheckoutTx interface {
	LockCart(ctx context.Context, cartID int64) error
	HasPurchased(ctx context.Context, userID, gameID int64) (bool, error)
	GetGame(ctx context.Context, gameID int64) (*models.Game, error)
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	ClearCartItems(ctx context.Context, cartID int64) error
	Commit() error
	Rollback() error
}

type purchaseRepository struct {
	DB *sql.DB
}

func NewPurchaseRepo(db *sql.DB) PurchaseRepository {
	return &purchaseRepository{DB: db}
}

// HasPurchased is the single ownership predicate: a user owns a game iff a
// purchase row exists for the pair.
func (r *purchaseRepository) HasPurchased(ctx context.Context, userID, gameID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND game_id = $2)`

	if err := r.DB.QueryRowContext(dbCtx, query, userID, gameID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}

	return exists, nil
}

func (r *purchaseRepository) ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.user_id, p.game_id, g.title, p.price_paid, p.purchase_date
		FROM purchases p
		JOIN games g ON g.id = p.game_id
		WHERE p.user_id = $1
		ORDER BY p.purchase_date DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	defer rows.Close()

	var purchases []models.Purchase

	for rows.Next() {
		var p models.Purchase

		err := rows.Scan(&p.ID, &p.UserID, &p.GameID, &p.GameTitle, &p.PricePaid, &p.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}

		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return purchases, nil
}

func (r *purchaseRepository) ListOwnedGames(ctx context.Context, userID int64) ([]*models.Game, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT g.id, g.title, g.description, g.price, g.image_url, g.developer, g.publisher, g.release_date, g.genre, g.is_active, g.created_at
		FROM purchases p
		JOIN games g ON g.id = p.game_id
		WHERE p.user_id = $1
		ORDER BY p.purchase_date DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned games: %w", err)
	}

	defer rows.Close()

	var games []*models.Game

	for rows.Next() {
		game := &models.Game{}

		err := rows.Scan(
			&game.ID, &game.Title, &game.Description, &game.Price, &game.ImageURL,
			&game.Developer, &game.Publisher, &game.ReleaseDate, &game.Genre,
			&game.IsActive, &game.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owned game: %w", err)
		}

		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return games, nil
}

// BeginCheckout opens a serializable transaction. Serializable isolation plus
// the cart row lock keeps two concurrent checkouts for one user from both
// committing purchases for the same game.
func (r *purchaseRepository) BeginCheckout(ctx context.Context) (CheckoutTx, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	return &checkoutTx{tx: tx}, nil
}

type checkoutTx struct {
	tx *sql.Tx
}

func (c *checkoutTx) LockCart(ctx context.Context, cartID int64) error {
	var id int64

	err := c.tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to lock cart: %w", err)
	}

	return nil
}

func (c *checkoutTx) HasPurchased(ctx context.Context, userID, gameID int64) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND game_id = $2)`

	if err := c.tx.QueryRowContext(ctx, query, userID, gameID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}

	return exists, nil
}

func (c *checkoutTx) GetGame(ctx context.Context, gameID int64) (*models.Game, error) {
	game := &models.Game{}

	query := `SELECT id, title, price, is_active FROM games WHERE id = $1`

	err := c.tx.QueryRowContext(ctx, query, gameID).Scan(&game.ID, &game.Title, &game.Price, &game.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying game in checkout: %w", err)
	}

	return game, nil
}

func (c *checkoutTx) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchases (user_id, game_id, price_paid, purchase_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := c.tx.QueryRowContext(ctx, query,
		purchase.UserID, purchase.GameID, purchase.PricePaid, purchase.PurchaseDate,
	).Scan(&purchase.ID)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}

	return nil
}

func (c *checkoutTx) ClearCartItems(ctx context.Context, cartID int64) error {
	_, err := c.tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	return nil
}

func (c *checkoutTx) Commit() error {
	return c.tx.Commit()
}

func (c *checkoutTx) Rollback() error {
	return c.tx.Rollback()
}
