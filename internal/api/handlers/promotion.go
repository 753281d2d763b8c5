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

type PromotionHandler struct {
	promotionService service.PromotionService
	validator        *validator.Validate
}

func NewPromotionHandler(promotionService service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService, validator: validator.New()}
}

func (h *PromotionHandler) CreatePromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreatePromotionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		promotion, err := h.promotionService.CreatePromotion(r.Context(), &req)
		if err != nil {
			logger.Warn("Promotion creation failed", slog.Int64("gameId", req.GameID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Promotion created", slog.Int64("promotionId", promotion.ID), slog.Int64("gameId", promotion.GameID))
		response.Success(w, http.StatusCreated, promotion)
	}
}

func (h *PromotionHandler) GetPromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		promotion, err := h.promotionService.GetPromotionByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, promotion)
	}
}

func (h *PromotionHandler) UpdatePromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.UpdatePromotionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		promotion, err := h.promotionService.UpdatePromotion(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, promotion)
	}
}

func (h *PromotionHandler) DeletePromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := h.promotionService.DeletePromotion(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Promotion deleted", nil)
	}
}

func (h *PromotionHandler) ActivePromotionCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.promotionService.ActivePromotionCount(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int{"count": count})
	}
}

func (h *PromotionHandler) ListPromotions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotions, err := h.promotionService.ListPromotions(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, promotions)
	}
}
