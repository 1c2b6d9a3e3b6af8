package handlers

import (
	"net/http"

	"dinemart/internal/common"
	"dinemart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// InventoryHandlers exposes kitchen stock levels to operators
type InventoryHandlers struct {
	inventoryRepo repositories.InventoryRepository
}

func NewInventoryHandlers(inventoryRepo repositories.InventoryRepository) *InventoryHandlers {
	return &InventoryHandlers{
		inventoryRepo: inventoryRepo,
	}
}

// ListLowStock handles GET /inventory/low-stock
func (h *InventoryHandlers) ListLowStock(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// AdjustQuantity handles POST /inventory/:id/adjust
func (h *InventoryHandlers) AdjustQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "inventory item id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Delta == 0 {
		return common.SendValidationError(c, "delta", "delta must be non-zero")
	}

	if err := h.inventoryRepo.AdjustQuantity(ctx, id, req.Delta); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "adjusted"})
}
