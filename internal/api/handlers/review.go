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

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

func (h *ReviewHandler) AddReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		var req models.AddReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.AddReview(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Review creation failed", slog.Int64("gameId", req.GameID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Review created", slog.Int64("reviewId", review.ID), slog.Int64("gameId", review.GameID))
		response.Success(w, http.StatusCreated, review)
	}
}

func (h *ReviewHandler) UpdateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		reviewID, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.UpdateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.UpdateReview(r.Context(), claims.UserID, reviewID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		reviewID, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := h.reviewService.DeleteReview(r.Context(), claims.UserID, reviewID, claims.IsAdmin()); err != nil {
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Review deleted", nil)
	}
}

// ListGameReviews is public; the game id comes from the path.
func (h *ReviewHandler) ListGameReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := pathID(w, r)
		if !ok {
			return
		}

		reviews, err := h.reviewService.ListGameReviews(r.Context(), gameID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

func (h *ReviewHandler) GetRatingSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := pathID(w, r)
		if !ok {
			return
		}

		summary, err := h.reviewService.GetRatingSummary(r.Context(), gameID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
