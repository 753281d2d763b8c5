package handlers

import (
	"net/http"

	service "github.com/mistlabs/gamestore/internal/services"
	"github.com/mistlabs/gamestore/internal/utils/response"
)

type WishlistHandler struct {
	wishlistService service.WishlistService
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		items, err := h.wishlistService.GetWishlist(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

func (h *WishlistHandler) AddToWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		gameID, ok := pathID(w, r)
		if !ok {
			return
		}

		item, err := h.wishlistService.AddToWishlist(r.Context(), claims.UserID, gameID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, item)
	}
}

func (h *WishlistHandler) RemoveFromWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		gameID, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := h.wishlistService.RemoveFromWishlist(r.Context(), claims.UserID, gameID); err != nil {
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Removed from wishlist", nil)
	}
}
