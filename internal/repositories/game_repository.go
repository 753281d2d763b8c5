package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/mistlabs/gamestore/internal/models"
	"github.com/mistlabs/gamestore/internal/utils"
)

type GameRepository interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGameByID(ctx context.Context, id int64) (*models.Game, error)
	UpdateGame(ctx context.Context, game *models.Game) error
	SetGameActive(ctx context.Context, id int64, active bool) error
	ListActiveGames(ctx context.Context) ([]*models.Game, error)
}

type gameRepository struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) GameRepository {
	return &gameRepository{DB: db}
}

func (r *gameRepository) CreateGame(ctx context.Context, game *models.Game) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO games (title, description, price, image_url, developer, publisher, release_date, genre, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		game.Title, game.Description, game.Price, game.ImageURL,
		game.Developer, game.Publisher, game.ReleaseDate, game.Genre, game.IsActive,
	).Scan(&game.ID, &game.CreatedAt)
}

// GetGameByID loads the game together with its promotion collection, so price
// computation never needs a second round trip.
func (r *gameRepository) GetGameByID(ctx context.Context, id int64) (*models.Game, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	game := &models.Game{}

	query := `
		SELECT id, title, description, price, image_url, developer, publisher, release_date, genre, is_active, created_at
		FROM games
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&game.ID, &game.Title, &game.Description, &game.Price, &game.ImageURL,
		&game.Developer, &game.Publisher, &game.ReleaseDate, &game.Genre,
		&game.IsActive, &game.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying game: %w", err)
	}

	promotions, err := r.loadPromotions(dbCtx, []int64{id})
	if err != nil {
		return nil, err
	}

	game.Promotions = promotions[id]

	return game, nil
}

func (r *gameRepository) UpdateGame(ctx context.Context, game *models.Game) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE games
		SET title = $1, description = $2, price = $3, image_url = $4, developer = $5,
		    publisher = $6, release_date = $7, genre = $8, is_active = $9
		WHERE id = $10
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		game.Title, game.Description, game.Price, game.ImageURL, game.Developer,
		game.Publisher, game.ReleaseDate, game.Genre, game.IsActive, game.ID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
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

func (r *gameRepository) SetGameActive(ctx context.Context, id int64, active bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE games SET is_active = $1 WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to set game active flag: %w", err)
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

// ListActiveGames returns every active game, newest first, with promotions
// loaded. Search filtering happens in the service layer because price bounds
// depend on the computed current price.
func (r *gameRepository) ListActiveGames(ctx context.Context) ([]*models.Game, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, title, description, price, image_url, developer, publisher, release_date, genre, is_active, created_at
		FROM games
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	defer rows.Close()

	var games []*models.Game
	var ids []int64

	for rows.Next() {
		game := &models.Game{}

		err := rows.Scan(
			&game.ID, &game.Title, &game.Description, &game.Price, &game.ImageURL,
			&game.Developer, &game.Publisher, &game.ReleaseDate, &game.Genre,
			&game.IsActive, &game.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}

		games = append(games, game)
		ids = append(ids, game.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return games, nil
	}

	promotions, err := r.loadPromotions(dbCtx, ids)
	if err != nil {
		return nil, err
	}

	for _, game := range games {
		game.Promotions = promotions[game.ID]
	}

	return games, nil
}

func (r *gameRepository) loadPromotions(ctx context.Context, gameIDs []int64) (map[int64][]models.Promotion, error) {
	query := `
		SELECT id, game_id, name, description, discount_type, discount_value, start_date, end_date, is_active, created_at
		FROM promotions
		WHERE game_id = ANY($1)
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(gameIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}

	defer rows.Close()

	result := make(map[int64][]models.Promotion)

	for rows.Next() {
		var p models.Promotion

		err := rows.Scan(&p.ID, &p.GameID, &p.Name, &p.Description, &p.DiscountType,
			&p.DiscountValue, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}

		result[p.GameID] = append(result[p.GameID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
