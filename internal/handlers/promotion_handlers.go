package handlers

import (
	"net/http"
	"time"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PromotionHandlers handles HTTP requests for promo codes
type PromotionHandlers struct {
	promotionService services.PromotionServiceInterface
}

func NewPromotionHandlers(promotionService services.PromotionServiceInterface) *PromotionHandlers {
	return &PromotionHandlers{
		promotionService: promotionService,
	}
}

// Validate handles POST /promotions/validate. It reports the discount
// a code would give without consuming a use.
func (h *PromotionHandlers) Validate(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Code         string          `json:"code"`
		RestaurantID string          `json:"restaurant_id"`
		Subtotal     decimal.Decimal `json:"subtotal"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Code == "" {
		return common.SendValidationError(c, "code", "promo code is required")
	}

	restaurantID, err := common.ValidateUUID(req.RestaurantID, "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if req.Subtotal.IsNegative() {
		return common.SendValidationError(c, "subtotal", "subtotal must not be negative")
	}

	discount, err := h.promotionService.Validate(ctx, req.Code, req.Subtotal, restaurantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":    true,
		"discount": discount,
	})
}

// Create handles POST /promotions
func (h *PromotionHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RestaurantID       string           `json:"restaurant_id"`
		Code               string           `json:"code"`
		Name               string           `json:"name"`
		Description        *string          `json:"description"`
		DiscountType       string           `json:"discount_type"`
		DiscountValue      decimal.Decimal  `json:"discount_value"`
		MaxDiscount        *decimal.Decimal `json:"max_discount"`
		MinimumOrderAmount decimal.Decimal  `json:"minimum_order_amount"`
		StartDate          time.Time        `json:"start_date"`
		EndDate            time.Time        `json:"end_date"`
		MaxUses            *int             `json:"max_uses"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	input := services.CreatePromotionInput{
		Code:               req.Code,
		Name:               req.Name,
		Description:        req.Description,
		DiscountType:       models.DiscountType(req.DiscountType),
		DiscountValue:      req.DiscountValue,
		MaxDiscount:        req.MaxDiscount,
		MinimumOrderAmount: req.MinimumOrderAmount,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		MaxUses:            req.MaxUses,
	}
	// An omitted restaurant makes the code valid platform-wide.
	if req.RestaurantID != "" {
		restaurantID, err := common.ValidateUUID(req.RestaurantID, "restaurant_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.RestaurantID = &restaurantID
	}

	promo, err := h.promotionService.CreatePromotion(ctx, input)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, promo)
}

// SetActive handles PATCH /promotions/:id/active
func (h *PromotionHandlers) SetActive(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "promotion id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.IsActive == nil {
		return common.SendValidationError(c, "is_active", "is_active is required")
	}

	promo, err := h.promotionService.SetPromotionActive(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, promo)
}
