package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/mistlabs/gamestore/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/lib/pq"
)

// Repositories bundles every data-access component over one connection pool.
type Repositories struct {
	DB        *sql.DB
	User      UserRepository
	Game      GameRepository
	Cart      CartRepository
	Purchase  PurchaseRepository
	Promotion PromotionRepository
	Review    ReviewRepository
	Wishlist  WishlistRepository
}

func New(cfg *config.Config) (*Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := initSchema(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Repositories{
		DB:        db,
		User:      NewUserRepo(db),
		Game:      NewGameRepo(db),
		Cart:      NewCartRepo(db),
		Purchase:  NewPurchaseRepo(db),
		Promotion: NewPromotionRepo(db),
		Review:    NewReviewRepo(db),
		Wishlist:  NewWishlistRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(20) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(10) NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(100) NOT NULL,
			description VARCHAR(2000) NOT NULL,
			price NUMERIC(6,2) NOT NULL CHECK (price > 0),
			image_url TEXT NOT NULL DEFAULT '',
			developer VARCHAR(100) NOT NULL DEFAULT '',
			publisher VARCHAR(100) NOT NULL DEFAULT '',
			release_date TIMESTAMPTZ,
			genre VARCHAR(50) NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS promotions (
			id BIGSERIAL PRIMARY KEY,
			game_id BIGINT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(500) NOT NULL DEFAULT '',
			discount_type VARCHAR(20) NOT NULL,
			discount_value NUMERIC(6,2) NOT NULL,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id BIGSERIAL PRIMARY KEY,
			cart_id BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
			game_id BIGINT NOT NULL REFERENCES games(id),
			price NUMERIC(6,2) NOT NULL CHECK (price >= 0),
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (cart_id, game_id)
		)`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			game_id BIGINT NOT NULL REFERENCES games(id),
			price_paid NUMERIC(6,2) NOT NULL CHECK (price_paid >= 0),
			purchase_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, game_id)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			game_id BIGINT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			title VARCHAR(100) NOT NULL,
			content VARCHAR(1000) NOT NULL,
			is_verified_purchase BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ,
			UNIQUE (user_id, game_id)
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist_items (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			game_id BIGINT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, game_id)
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
