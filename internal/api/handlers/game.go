package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/mistlabs/gamestore/internal/api/middleware"
	"github.com/mistlabs/gamestore/internal/models"
	service "github.com/mistlabs/gamestore/internal/services"
	"github.com/mistlabs/gamestore/internal/utils"
	"github.com/mistlabs/gamestore/internal/utils/response"
)

type GameHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewGameHandler(catalogService service.CatalogService) *GameHandler {
	return &GameHandler{catalogService: catalogService, validator: validator.New()}
}

func (h *GameHandler) GetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		game, err := h.catalogService.GetGame(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, game)
	}
}

// SearchGames serves the storefront list.
// e.g. GET /games?q=portal&genre=Puzzle&max_price=20&sort=price-asc
func (h *GameHandler) SearchGames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		req := models.GameSearchRequest{
			SearchTerm: query.Get("q"),
			Genre:      query.Get("genre"),
			Developer:  query.Get("developer"),
			SortBy:     query.Get("sort"),
		}

		if v := query.Get("min_price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err == nil {
				req.MinPrice = &price
			}
		}

		if v := query.Get("max_price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err == nil {
				req.MaxPrice = &price
			}
		}

		req.OnlyWithPromotions = query.Get("on_sale") == "true"

		if !utils.ValidateQuery(w, h.validator, &req) {
			return
		}

		games, err := h.catalogService.SearchGames(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, games)
	}
}

func (h *GameHandler) CreateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateGameRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		game, err := h.catalogService.CreateGame(r.Context(), &req)
		if err != nil {
			logger.Error("Game creation failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Game created", slog.Int64("gameId", game.ID), slog.String("title", game.Title))
		response.Success(w, http.StatusCreated, game)
	}
}

func (h *GameHandler) UpdateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.UpdateGameRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		game, err := h.catalogService.UpdateGame(r.Context(), id, &req)
		if err != nil {
			logger.Error("Game update failed", slog.Int64("gameId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Game updated", slog.Int64("gameId", game.ID))
		response.Success(w, http.StatusOK, game)
	}
}

func (h *GameHandler) DeactivateGame() http.HandlerFunc {
	return h.setActive(false, "Game deactivated")
}

func (h *GameHandler) ReactivateGame() http.HandlerFunc {
	return h.setActive(true, "Game reactivated")
}

func (h *GameHandler) setActive(active bool, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := h.catalogService.SetGameActive(r.Context(), id, active); err != nil {
			response.Error(w, err)

			return
		}

		logger.Info(message, slog.Int64("gameId", id))
		response.SuccessMessage(w, http.StatusOK, message, nil)
	}
}
