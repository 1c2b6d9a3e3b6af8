package handlers

import (
	"context"
	"net/http"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReservationHandlers handles HTTP requests for reservations
type ReservationHandlers struct {
	reservationService  services.ReservationServiceInterface
	availabilityService services.AvailabilityServiceInterface
}

func NewReservationHandlers(reservationService services.ReservationServiceInterface,
	availabilityService services.AvailabilityServiceInterface) *ReservationHandlers {
	return &ReservationHandlers{
		reservationService:  reservationService,
		availabilityService: availabilityService,
	}
}

// CreateReservation handles POST /reservations
func (h *ReservationHandlers) CreateReservation(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req struct {
		RestaurantID    string  `json:"restaurant_id"`
		TableID         *string `json:"table_id"`
		Date            string  `json:"date"`
		Time            string  `json:"time"`
		GuestCount      int     `json:"guest_count"`
		SpecialRequests *string `json:"special_requests"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	restaurantID, err := common.ValidateUUID(req.RestaurantID, "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	startsAt, err := common.ParseDateTime(req.Date, req.Time)
	if err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}
	if err := common.ValidatePositiveInteger(req.GuestCount, "guest_count", 50); err != nil {
		return common.SendValidationError(c, "guest_count", err.Error())
	}

	input := &services.CreateReservationInput{
		UserID:          userID,
		RestaurantID:    restaurantID,
		StartsAt:        startsAt,
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
	}
	if req.TableID != nil && *req.TableID != "" {
		tableID, err := common.ValidateUUID(*req.TableID, "table_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.TableID = &tableID
	}

	reservation, err := h.reservationService.CreateReservation(ctx, input)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, reservation)
}

// GetReservation handles GET /reservations/:id
func (h *ReservationHandlers) GetReservation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "reservation id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	reservation, err := h.reservationService.GetReservationByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, reservation)
}

// Confirm handles POST /reservations/:id/confirm
func (h *ReservationHandlers) Confirm(c echo.Context) error {
	return h.applyTransition(c, h.reservationService.Confirm)
}

// Cancel handles POST /reservations/:id/cancel
func (h *ReservationHandlers) Cancel(c echo.Context) error {
	return h.applyTransition(c, h.reservationService.Cancel)
}

// Seat handles POST /reservations/:id/seat
func (h *ReservationHandlers) Seat(c echo.Context) error {
	return h.applyTransition(c, h.reservationService.Seat)
}

// Complete handles POST /reservations/:id/complete
func (h *ReservationHandlers) Complete(c echo.Context) error {
	return h.applyTransition(c, h.reservationService.Complete)
}

// MarkNoShow handles POST /reservations/:id/no-show
func (h *ReservationHandlers) MarkNoShow(c echo.Context) error {
	return h.applyTransition(c, h.reservationService.MarkNoShow)
}

// CheckAvailability handles POST /reservations/check-availability
func (h *ReservationHandlers) CheckAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RestaurantID string `json:"restaurant_id"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		PartySize    int    `json:"party_size"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	restaurantID, err := common.ValidateUUID(req.RestaurantID, "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	startsAt, err := common.ParseDateTime(req.Date, req.Time)
	if err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}
	if err := common.ValidatePositiveInteger(req.PartySize, "party_size", 50); err != nil {
		return common.SendValidationError(c, "party_size", err.Error())
	}

	result, err := h.availabilityService.FindAvailableTables(ctx, restaurantID, startsAt, req.PartySize)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ReservationHandlers) applyTransition(c echo.Context,
	fn func(ctx context.Context, id uuid.UUID) (*models.Reservation, error)) error {
	id, err := common.ValidateUUID(c.Param("id"), "reservation id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	reservation, err := fn(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, reservation)
}
