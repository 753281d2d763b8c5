package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mistlabs/gamestore/internal/api/middleware"
	"github.com/mistlabs/gamestore/internal/cache"
	"github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
)

type CatalogService interface {
	GetGame(ctx context.Context, id int64) (*models.GameView, error)
	SearchGames(ctx context.Context, req *models.GameSearchRequest) ([]*models.GameView, error)
	CreateGame(ctx context.Context, req *models.CreateGameRequest) (*models.Game, error)
	UpdateGame(ctx context.Context, id int64, req *models.UpdateGameRequest) (*models.Game, error)
	SetGameActive(ctx context.Context, id int64, active bool) error
}

type catalogService struct {
	repo    repository.GameRepository
	cache   cache.Cache
	gameTTL time.Duration
}

func NewCatalogService(repo repository.GameRepository, c cache.Cache, gameTTL time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: c, gameTTL: gameTTL}
}

// GetGame returns the storefront view of a game. Deactivated games are
// reported as gone rather than not found, since the record still exists.
func (s *catalogService) GetGame(ctx context.Context, id int64) (*models.GameView, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.GameKeyPrefix, strconv.FormatInt(id, 10))

	game := &models.Game{}

	found, err := s.cache.Get(ctx, key, game)
	if err != nil {
		logger.Warn("Cache lookup failed", slog.String("key", key), slog.Any("error", err))
	}

	if !found {
		game, err = s.repo.GetGameByID(ctx, id)
		if err != nil {
			return nil, errors.NotFoundError("Game not found").WithError(err)
		}

		if err := s.cache.Set(ctx, key, game, s.gameTTL); err != nil {
			logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	if !game.IsActive {
		return nil, errors.UnavailableError("Game is no longer available")
	}

	return models.NewGameView(game, time.Now()), nil
}

// SearchGames filters and sorts the active catalog in memory. Price bounds
// apply to the current price, so a discounted game matches a lower bound its
// base price would miss.
func (s *catalogService) SearchGames(ctx context.Context, req *models.GameSearchRequest) ([]*models.GameView, error) {
	games, err := s.repo.ListActiveGames(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch games").WithError(err)
	}

	now := time.Now()
	views := make([]*models.GameView, 0, len(games))

	term := strings.ToLower(strings.TrimSpace(req.SearchTerm))

	for _, game := range games {
		if term != "" && !matchesTerm(game, term) {
			continue
		}

		if req.Genre != "" && !strings.EqualFold(game.Genre, req.Genre) {
			continue
		}

		if req.Developer != "" && !strings.EqualFold(game.Developer, req.Developer) {
			continue
		}

		view := models.NewGameView(game, now)

		if req.MinPrice != nil && view.CurrentPrice < *req.MinPrice {
			continue
		}

		if req.MaxPrice != nil && view.CurrentPrice > *req.MaxPrice {
			continue
		}

		if req.OnlyWithPromotions && !view.OnPromotion {
			continue
		}

		views = append(views, view)
	}

	sortViews(views, req.SortBy)

	return views, nil
}

func matchesTerm(game *models.Game, term string) bool {
	return strings.Contains(strings.ToLower(game.Title), term) ||
		strings.Contains(strings.ToLower(game.Developer), term) ||
		strings.Contains(strings.ToLower(game.Genre), term)
}

func sortViews(views []*models.GameView, sortBy string) {
	switch sortBy {
	case "price-asc":
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CurrentPrice < views[j].CurrentPrice
		})
	case "price-desc":
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CurrentPrice > views[j].CurrentPrice
		})
	case "name":
		sort.SliceStable(views, func(i, j int) bool {
			return strings.ToLower(views[i].Title) < strings.ToLower(views[j].Title)
		})
	default:
		// "newest" is the repository's natural order.
	}
}

func (s *catalogService) CreateGame(ctx context.Context, req *models.CreateGameRequest) (*models.Game, error) {
	game := &models.Game{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Developer:   req.Developer,
		Publisher:   req.Publisher,
		ReleaseDate: req.ReleaseDate,
		Genre:       req.Genre,
		IsActive:    true,
	}

	err := s.repo.CreateGame(ctx, game)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create game").WithError(err)
	}

	return game, nil
}

func (s *catalogService) UpdateGame(ctx context.Context, id int64, req *models.UpdateGameRequest) (*models.Game, error) {
	game, err := s.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Game not found").WithError(err)
	}

	if req.Title != nil {
		game.Title = *req.Title
	}

	if req.Description != nil {
		game.Description = *req.Description
	}

	if req.Price != nil {
		game.Price = *req.Price
	}

	if req.ImageURL != nil {
		game.ImageURL = *req.ImageURL
	}

	if req.Developer != nil {
		game.Developer = *req.Developer
	}

	if req.Publisher != nil {
		game.Publisher = *req.Publisher
	}

	if req.ReleaseDate != nil {
		game.ReleaseDate = *req.ReleaseDate
	}

	if req.Genre != nil {
		game.Genre = *req.Genre
	}

	if req.IsActive != nil {
		game.IsActive = *req.IsActive
	}

	err = s.repo.UpdateGame(ctx, game)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update game").WithError(err)
	}

	s.invalidate(ctx, id)

	return game, nil
}

// SetGameActive flips availability without touching the rest of the record.
// Deactivation hides the game from the storefront but keeps it in libraries.
func (s *catalogService) SetGameActive(ctx context.Context, id int64, active bool) error {
	err := s.repo.SetGameActive(ctx, id, active)
	if err != nil {
		return errors.NotFoundError("Game not found").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *catalogService) invalidate(ctx context.Context, id int64) {
	key := cache.Key(cache.GameKeyPrefix, strconv.FormatInt(id, 10))

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}
