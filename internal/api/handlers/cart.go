package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mistlabs/gamestore/internal/api/middleware"
	service "github.com/mistlabs/gamestore/internal/services"
	"github.com/mistlabs/gamestore/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		gameID, ok := pathID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.AddToCart(r.Context(), claims.UserID, gameID)
		if err != nil {
			logger.Warn("Add to cart failed", slog.Int64("gameId", gameID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Game added to cart", slog.Int64("gameId", gameID))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveFromCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		gameID, ok := pathID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.RemoveFromCart(r.Context(), claims.UserID, gameID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Cart cleared", cart)
	}
}

func (h *CartHandler) ItemCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		count, err := h.cartService.ItemCount(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int{"count": count})
	}
}
