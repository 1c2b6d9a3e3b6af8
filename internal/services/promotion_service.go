package services

import (
	"context"
	"strings"
	"time"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var percentDivisor = decimal.NewFromInt(100)

// ComputeDiscount computes the discount a promotion yields on an order
// subtotal. It is pure: validation never mutates usage counters.
// Checks run in a fixed order so callers get stable error reasons.
func ComputeDiscount(promo *models.Promotion, subtotal decimal.Decimal, restaurantID uuid.UUID, at time.Time) (decimal.Decimal, error) {
	if !promo.IsUsableAt(at) {
		return decimal.Zero, common.PromotionError(common.PromoReasonExpired,
			"promo code has expired or reached max uses")
	}
	if promo.RestaurantID != nil && *promo.RestaurantID != restaurantID {
		return decimal.Zero, common.PromotionError(common.PromoReasonRestaurantMismatch,
			"this promo code is not valid for this restaurant")
	}
	if subtotal.LessThan(promo.MinimumOrderAmount) {
		return decimal.Zero, common.PromotionError(common.PromoReasonBelowMinimum,
			"minimum order amount is $%s", promo.MinimumOrderAmount.StringFixed(2))
	}

	var discount decimal.Decimal
	if promo.DiscountType == models.DiscountPercentage {
		discount = subtotal.Mul(promo.DiscountValue).Div(percentDivisor)
	} else {
		discount = promo.DiscountValue
	}
	if promo.MaxDiscount != nil && discount.GreaterThan(*promo.MaxDiscount) {
		discount = *promo.MaxDiscount
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount.Round(2), nil
}

// CreatePromotionInput carries the fields an operator sets when
// creating a promo code.
type CreatePromotionInput struct {
	RestaurantID       *uuid.UUID
	Code               string
	Name               string
	Description        *string
	DiscountType       models.DiscountType
	DiscountValue      decimal.Decimal
	MaxDiscount        *decimal.Decimal
	MinimumOrderAmount decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	MaxUses            *int
}

// PromotionServiceInterface validates, applies and manages promo codes
type PromotionServiceInterface interface {
	Validate(ctx context.Context, code string, subtotal decimal.Decimal, restaurantID uuid.UUID) (decimal.Decimal, error)
	Apply(ctx context.Context, code string, subtotal decimal.Decimal, restaurantID uuid.UUID) (decimal.Decimal, error)
	CreatePromotion(ctx context.Context, input CreatePromotionInput) (*models.Promotion, error)
	SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) (*models.Promotion, error)
}

type promotionService struct {
	promoRepo repositories.PromotionRepository
	now       func() time.Time
}

func NewPromotionService(promoRepo repositories.PromotionRepository) PromotionServiceInterface {
	return &promotionService{promoRepo: promoRepo, now: time.Now}
}

// Validate checks a code against a subtotal without consuming a use
func (s *promotionService) Validate(ctx context.Context, code string, subtotal decimal.Decimal, restaurantID uuid.UUID) (decimal.Decimal, error) {
	promo, err := s.lookup(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	return ComputeDiscount(promo, subtotal, restaurantID, s.now())
}

// Apply computes the discount and consumes exactly one use. The
// increment is guarded in SQL, so concurrent applications can never
// push current_uses past the cap; losing that race surfaces as an
// expired promotion.
func (s *promotionService) Apply(ctx context.Context, code string, subtotal decimal.Decimal, restaurantID uuid.UUID) (decimal.Decimal, error) {
	promo, err := s.lookup(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	discount, err := ComputeDiscount(promo, subtotal, restaurantID, s.now())
	if err != nil {
		return decimal.Zero, err
	}
	incremented, err := s.promoRepo.IncrementUsage(ctx, promo.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if !incremented {
		return decimal.Zero, common.PromotionError(common.PromoReasonExpired,
			"promo code has expired or reached max uses")
	}
	return discount, nil
}

// CreatePromotion registers a new promo code. Codes are unique across
// the platform regardless of case.
func (s *promotionService) CreatePromotion(ctx context.Context, input CreatePromotionInput) (*models.Promotion, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, common.ValidationError("promo code is required")
	}
	if input.Name == "" {
		return nil, common.ValidationError("promotion name is required")
	}
	switch input.DiscountType {
	case models.DiscountPercentage:
		if input.DiscountValue.LessThanOrEqual(decimal.Zero) || input.DiscountValue.GreaterThan(percentDivisor) {
			return nil, common.ValidationError("percentage discount must be between 0 and 100")
		}
	case models.DiscountFixed:
		if input.DiscountValue.LessThanOrEqual(decimal.Zero) {
			return nil, common.ValidationError("fixed discount must be positive")
		}
	default:
		return nil, common.ValidationError("discount type must be PERCENTAGE or FIXED")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, common.ValidationError("end date must be after start date")
	}
	if input.MaxUses != nil && *input.MaxUses <= 0 {
		return nil, common.ValidationError("max uses must be positive")
	}
	if input.MinimumOrderAmount.IsNegative() {
		return nil, common.ValidationError("minimum order amount cannot be negative")
	}

	existing, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ConflictError("promo code already exists")
	}

	promo := &models.Promotion{
		ID:                 uuid.New(),
		RestaurantID:       input.RestaurantID,
		Code:               code,
		Name:               input.Name,
		Description:        input.Description,
		DiscountType:       input.DiscountType,
		DiscountValue:      input.DiscountValue,
		MaxDiscount:        input.MaxDiscount,
		MinimumOrderAmount: input.MinimumOrderAmount,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		MaxUses:            input.MaxUses,
		IsActive:           true,
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// SetPromotionActive toggles a promotion on or off without touching
// its usage counter.
func (s *promotionService) SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) (*models.Promotion, error) {
	promo, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, common.NotFoundError("promotion")
	}
	if promo.IsActive == active {
		return promo, nil
	}
	promo.IsActive = active
	if err := s.promoRepo.Update(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *promotionService) lookup(ctx context.Context, code string) (*models.Promotion, error) {
	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, common.NotFoundError("promo code")
	}
	return promo, nil
}
