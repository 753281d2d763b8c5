package service

import (
	"context"
	"time"

	"github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/models"
	repository "github.com/mistlabs/gamestore/internal/repositories"
)

type PromotionService interface {
	CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest) (*models.Promotion, error)
	GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, id int64, req *models.UpdatePromotionRequest) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id int64) error
	ListPromotions(ctx context.Context) ([]models.Promotion, error)
	ActivePromotionCount(ctx context.Context) (int, error)
}

type promotionService struct {
	repo     repository.PromotionRepository
	gameRepo repository.GameRepository
}

func NewPromotionService(repo repository.PromotionRepository, gameRepo repository.GameRepository) PromotionService {
	return &promotionService{repo: repo, gameRepo: gameRepo}
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest) (*models.Promotion, error) {
	game, err := s.gameRepo.GetGameByID(ctx, req.GameID)
	if err != nil {
		return nil, errors.NotFoundError("Game not found").WithError(err)
	}

	promotion := &models.Promotion{
		GameID:        req.GameID,
		Name:          req.Name,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsActive:      true,
	}

	if err := validatePromotion(promotion, game.Price); err != nil {
		return nil, err
	}

	if err := s.repo.CreatePromotion(ctx, promotion); err != nil {
		return nil, errors.DatabaseError("Failed to create promotion").WithError(err)
	}

	return promotion, nil
}

func (s *promotionService) GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error) {
	promotion, err := s.repo.GetPromotionByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Promotion not found").WithError(err)
	}

	return promotion, nil
}

func (s *promotionService) UpdatePromotion(ctx context.Context, id int64, req *models.UpdatePromotionRequest) (*models.Promotion, error) {
	promotion, err := s.repo.GetPromotionByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Promotion not found").WithError(err)
	}

	if req.Name != nil {
		promotion.Name = *req.Name
	}

	if req.Description != nil {
		promotion.Description = *req.Description
	}

	if req.DiscountType != nil {
		promotion.DiscountType = *req.DiscountType
	}

	if req.DiscountValue != nil {
		promotion.DiscountValue = *req.DiscountValue
	}

	if req.StartDate != nil {
		promotion.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		promotion.EndDate = *req.EndDate
	}

	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	game, err := s.gameRepo.GetGameByID(ctx, promotion.GameID)
	if err != nil {
		return nil, errors.NotFoundError("Game not found").WithError(err)
	}

	if err := validatePromotion(promotion, game.Price); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePromotion(ctx, promotion); err != nil {
		return nil, errors.DatabaseError("Failed to update promotion").WithError(err)
	}

	return promotion, nil
}

func (s *promotionService) DeletePromotion(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeletePromotion(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete promotion").WithError(err)
	}

	if !deleted {
		return errors.NotFoundError("Promotion not found")
	}

	return nil
}

func (s *promotionService) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	promotions, err := s.repo.ListPromotions(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch promotions").WithError(err)
	}

	return promotions, nil
}

// ActivePromotionCount reports how many promotions are running right now.
func (s *promotionService) ActivePromotionCount(ctx context.Context) (int, error) {
	count, err := s.repo.CountActivePromotions(ctx, time.Now())
	if err != nil {
		return 0, errors.DatabaseError("Failed to count active promotions").WithError(err)
	}

	return count, nil
}

// validatePromotion enforces the rules the request validator cannot express:
// the window must be ordered and the discount must leave a sane price.
func validatePromotion(p *models.Promotion, basePrice float64) error {
	if !p.EndDate.After(p.StartDate) {
		return errors.ValidationError("End date must be after start date")
	}

	switch p.DiscountType {
	case models.DiscountPercentage:
		if p.DiscountValue > 100 {
			return errors.ValidationError("Percentage discount cannot exceed 100")
		}
	case models.DiscountFixed:
		if p.DiscountValue >= basePrice {
			return errors.ValidationError("Fixed discount must be less than the game price")
		}
	}

	return nil
}
