package handlers

import (
	"net/http"
	"strconv"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req struct {
		RestaurantID         string                  `json:"restaurant_id"`
		OrderType            string                  `json:"order_type"`
		DeliveryAddress      *models.DeliveryAddress `json:"delivery_address"`
		DeliveryInstructions *string                 `json:"delivery_instructions"`
		Items                []struct {
			MenuItemID          string  `json:"menu_item_id"`
			Quantity            int     `json:"quantity"`
			SpecialInstructions *string `json:"special_instructions"`
		} `json:"items"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	restaurantID, err := common.ValidateUUID(req.RestaurantID, "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if len(req.Items) == 0 {
		return common.SendValidationError(c, "items", "order must contain at least one item")
	}

	input := &services.CreateOrderInput{
		UserID:               userID,
		RestaurantID:         restaurantID,
		OrderType:            models.OrderType(req.OrderType),
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
	}
	for _, item := range req.Items {
		menuItemID, err := common.ValidateUUID(item.MenuItemID, "menu_item_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		if err := common.ValidatePositiveInteger(item.Quantity, "quantity", 100); err != nil {
			return common.SendValidationError(c, "quantity", err.Error())
		}
		input.Items = append(input.Items, services.CreateOrderItemInput{
			MenuItemID:          menuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	order, err := h.orderService.CreateOrder(ctx, input)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetOrderByID(ctx, orderID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /orders for the authenticated user
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit, offset := parsePagination(c)
	orders, err := h.orderService.ListOrdersByUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// ListOrderItems handles GET /orders/:id/items
func (h *OrderHandlers) ListOrderItems(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	items, err := h.orderService.ListOrderItems(ctx, orderID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// ListRestaurantOrders handles GET /restaurants/:id/orders for staff
func (h *OrderHandlers) ListRestaurantOrders(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("id"), "restaurant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	limit, offset := parsePagination(c)
	orders, err := h.orderService.ListOrdersByRestaurant(ctx, restaurantID, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// ApplyPromotion handles POST /orders/:id/apply-promo
func (h *OrderHandlers) ApplyPromotion(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Code == "" {
		return common.SendValidationError(c, "code", "promo code is required")
	}

	result, err := h.orderService.ApplyPromotion(ctx, orderID, req.Code)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrderHandlers) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	role, _ := common.GetRoleFromContext(ctx)
	order, err := h.orderService.TransitionStatus(ctx, orderID, models.OrderCancelled, role)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PATCH /orders/:id/status
func (h *OrderHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Status == "" {
		return common.SendValidationError(c, "status", "status is required")
	}

	role, _ := common.GetRoleFromContext(ctx)
	order, err := h.orderService.TransitionStatus(ctx, orderID, models.OrderStatus(req.Status), role)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// TrackOrder handles GET /orders/:id/track
func (h *OrderHandlers) TrackOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	tracking, err := h.orderService.Track(ctx, orderID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, tracking)
}

// parsePagination reads limit/offset query params with sane defaults
func parsePagination(c echo.Context) (int, int) {
	limit := 20
	offset := 0
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if o, err := strconv.Atoi(c.QueryParam("offset")); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}
