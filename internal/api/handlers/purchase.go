package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mistlabs/gamestore/internal/api/middleware"
	"github.com/mistlabs/gamestore/internal/models"
	service "github.com/mistlabs/gamestore/internal/services"
	"github.com/mistlabs/gamestore/internal/utils"
	"github.com/mistlabs/gamestore/internal/utils/response"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
	validator       *validator.Validate
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService, validator: validator.New()}
}

func (h *PurchaseHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		result, err := h.purchaseService.Checkout(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout completed", slog.Int("purchases", len(result.Purchases)))
		response.SuccessMessage(w, http.StatusOK, result.Message, result.Purchases)
	}
}

func (h *PurchaseHandler) ListPurchases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		purchases, err := h.purchaseService.ListPurchases(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, purchases)
	}
}

// GetLibrary serves the user's owned games.
// e.g. GET /library?q=portal&genre=Puzzle&sort=name
func (h *PurchaseHandler) GetLibrary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()

		req := models.LibrarySearchRequest{
			SearchTerm: query.Get("q"),
			Genre:      query.Get("genre"),
			SortBy:     query.Get("sort"),
		}

		if !utils.ValidateQuery(w, h.validator, &req) {
			return
		}

		games, err := h.purchaseService.GetLibrary(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, games)
	}
}
