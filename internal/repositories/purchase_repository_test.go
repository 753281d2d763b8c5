package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPurchaseRepoTest(t *testing.T) (repository.PurchaseRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewPurchaseRepo(db), mock
}

func TestPurchaseRepository(t *testing.T) {
	repo, mock := setupPurchaseRepoTest(t)
	ctx := t.Context()

	userID := int64(1)
	now := time.Now()

	t.Run("HasPurchased", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND game_id = $2)`)

		t.Run("Success - Owned", func(t *testing.T) {
			mock.ExpectQuery(expectedSQL).
				WithArgs(userID, int64(100)).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

			owned, err := repo.HasPurchased(ctx, userID, 100)

			require.NoError(t, err)
			assert.True(t, owned)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - Not Owned", func(t *testing.T) {
			mock.ExpectQuery(expectedSQL).
				WithArgs(userID, int64(100)).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

			owned, err := repo.HasPurchased(ctx, userID, 100)

			require.NoError(t, err)
			assert.False(t, owned)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListPurchasesByUser", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT p.id, p.user_id, p.game_id, g.title, p.price_paid, p.purchase_date`)

		t.Run("Success", func(t *testing.T) {
			mock.ExpectQuery(expectedSQL).
				WithArgs(userID).
				WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "game_id", "title", "price_paid", "purchase_date"}).
					AddRow(2, userID, 200, "Moonrise", 35.50, now).
					AddRow(1, userID, 100, "Starfall", 19.99, now.Add(-time.Hour)))

			purchases, err := repo.ListPurchasesByUser(ctx, userID)

			require.NoError(t, err)
			require.Len(t, purchases, 2)
			assert.Equal(t, "Moonrise", purchases[0].GameTitle)
			assert.InDelta(t, 19.99, purchases[1].PricePaid, 0.0001)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - No Purchases", func(t *testing.T) {
			mock.ExpectQuery(expectedSQL).
				WithArgs(userID).
				WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "game_id", "title", "price_paid", "purchase_date"}))

			purchases, err := repo.ListPurchasesByUser(ctx, userID)

			require.NoError(t, err)
			assert.Empty(t, purchases)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListOwnedGames", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`FROM purchases p`)

		t.Run("Success - Most Recent Purchase First", func(t *testing.T) {
			columns := []string{
				"id", "title", "description", "price", "image_url", "developer",
				"publisher", "release_date", "genre", "is_active", "created_at",
			}

			mock.ExpectQuery(expectedSQL).
				WithArgs(userID).
				WillReturnRows(sqlmock.NewRows(columns).
					AddRow(200, "Moonrise", "d", 35.50, "", "Orbit Works", "Orbit Works", now, "RPG", true, now).
					AddRow(100, "Starfall", "d", 19.99, "", "Nimbus", "Nimbus", now, "Racing", true, now))

			games, err := repo.ListOwnedGames(ctx, userID)

			require.NoError(t, err)
			require.Len(t, games, 2)
			assert.Equal(t, "Moonrise", games[0].Title)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}

func TestCheckoutTx(t *testing.T) {
	repo, mock := setupPurchaseRepoTest(t)
	ctx := t.Context()

	userID := int64(1)
	cartID := int64(10)
	now := time.Now()

	lockSQL := regexp.QuoteMeta(`SELECT id FROM carts WHERE id = $1 FOR UPDATE`)
	gameSQL := regexp.QuoteMeta(`SELECT id, title, price, is_active FROM games WHERE id = $1`)
	ownedSQL := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND game_id = $2)`)
	insertSQL := regexp.QuoteMeta(`INSERT INTO purchases (user_id, game_id, price_paid, purchase_date)`)
	clearSQL := regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1`)

	t.Run("Success - Full Checkout Commits", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID))
		mock.ExpectQuery(gameSQL).
			WithArgs(int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "is_active"}).
				AddRow(100, "Starfall", 19.99, true))
		mock.ExpectQuery(ownedSQL).
			WithArgs(userID, int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(insertSQL).
			WithArgs(userID, int64(100), 19.99, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec(clearSQL).
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := repo.BeginCheckout(ctx)
		require.NoError(t, err)

		require.NoError(t, tx.LockCart(ctx, cartID))

		game, err := tx.GetGame(ctx, 100)
		require.NoError(t, err)
		assert.True(t, game.IsActive)

		owned, err := tx.HasPurchased(ctx, userID, 100)
		require.NoError(t, err)
		assert.False(t, owned)

		purchase := &models.Purchase{UserID: userID, GameID: 100, PricePaid: 19.99, PurchaseDate: now}
		require.NoError(t, tx.CreatePurchase(ctx, purchase))
		assert.Equal(t, int64(7), purchase.ID)

		require.NoError(t, tx.ClearCartItems(ctx, cartID))
		require.NoError(t, tx.Commit())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Missing Game Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID))
		mock.ExpectQuery(gameSQL).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		tx, err := repo.BeginCheckout(ctx)
		require.NoError(t, err)

		require.NoError(t, tx.LockCart(ctx, cartID))

		game, err := tx.GetGame(ctx, 999)
		assert.Nil(t, game)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		require.NoError(t, tx.Rollback())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Begin Error", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

		tx, err := repo.BeginCheckout(ctx)

		assert.Nil(t, tx)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
