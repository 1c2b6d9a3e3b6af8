package handlers

import (
	"net/http"

	"dinemart/internal/common"
	"dinemart/internal/repositories"
	"dinemart/internal/services"

	"github.com/labstack/echo/v4"
)

// RestaurantHandlers serves restaurant and menu reads plus image
// uploads
type RestaurantHandlers struct {
	menuService services.MenuServiceInterface
	tableRepo   repositories.TableRepository
}

func NewRestaurantHandlers(menuService services.MenuServiceInterface, tableRepo repositories.TableRepository) *RestaurantHandlers {
	return &RestaurantHandlers{
		menuService: menuService,
		tableRepo:   tableRepo,
	}
}

// ListRestaurants handles GET /restaurants
func (h *RestaurantHandlers) ListRestaurants(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := parsePagination(c)
	restaurants, err := h.menuService.ListRestaurants(ctx, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// GetRestaurant handles GET /restaurants/:id
func (h *RestaurantHandlers) GetRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "restaurant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	restaurant, err := h.menuService.GetRestaurant(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, restaurant)
}

// GetMenu handles GET /restaurants/:id/menu
func (h *RestaurantHandlers) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "restaurant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	items, err := h.menuService.GetMenu(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// ListTables handles GET /restaurants/:id/tables
func (h *RestaurantHandlers) ListTables(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "restaurant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	tables, err := h.tableRepo.ListByRestaurant(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tables": tables,
		"count":  len(tables),
	})
}

// SetTableAvailability handles PATCH /tables/:id/availability. Closing
// a table takes it out of availability search without touching its
// existing reservations.
func (h *RestaurantHandlers) SetTableAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "table id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		IsAvailable *bool `json:"is_available"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.IsAvailable == nil {
		return common.SendValidationError(c, "is_available", "is_available is required")
	}

	table, err := h.tableRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if table == nil {
		return common.SendDomainError(c, common.NotFoundError("table"))
	}

	if err := h.tableRepo.SetAvailability(ctx, id, *req.IsAvailable); err != nil {
		return common.SendDomainError(c, err)
	}
	table.IsAvailable = *req.IsAvailable
	return c.JSON(http.StatusOK, table)
}

// UploadRestaurantImage handles POST /restaurants/:id/image
func (h *RestaurantHandlers) UploadRestaurantImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "restaurant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendClientError(c, "failed to read uploaded file")
	}
	defer src.Close()

	objectName, err := h.menuService.UploadRestaurantImage(ctx, id, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"object": objectName})
}

// UploadMenuItemImage handles POST /menu-items/:id/image
func (h *RestaurantHandlers) UploadMenuItemImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendClientError(c, "failed to read uploaded file")
	}
	defer src.Close()

	objectName, err := h.menuService.UploadMenuItemImage(ctx, id, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"object": objectName})
}

// GetMenuItem handles GET /menu-items/:id
func (h *RestaurantHandlers) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.menuService.GetMenuItem(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, item)
}
