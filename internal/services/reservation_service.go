package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// Sweep windows for the reservation lifecycle
const (
	reminderLead  = time.Hour
	reminderSlack = 30 * time.Minute
	pendingExpiry = 24 * time.Hour
)

// CreateReservationInput carries everything needed to book
type CreateReservationInput struct {
	UserID          uuid.UUID  `json:"user_id"`
	RestaurantID    uuid.UUID  `json:"restaurant_id"`
	TableID         *uuid.UUID `json:"table_id,omitempty"`
	StartsAt        time.Time  `json:"starts_at"`
	GuestCount      int        `json:"guest_count"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
}

type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input *CreateReservationInput) (*models.Reservation, error)
	GetReservationByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Confirm(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Seat(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	SendReminders(ctx context.Context) (int, error)
	CancelExpired(ctx context.Context) (int, error)
}

type reservationService struct {
	reservationRepo repositories.ReservationRepository
	tableRepo       repositories.TableRepository
	restaurantRepo  repositories.RestaurantRepository
	notifier        Notifier
	now             func() time.Time
}

func NewReservationService(reservationRepo repositories.ReservationRepository, tableRepo repositories.TableRepository,
	restaurantRepo repositories.RestaurantRepository, notifier Notifier) ReservationServiceInterface {
	return &reservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		restaurantRepo:  restaurantRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

// CreateReservation books a table (or a floating reservation when no
// table is requested). When a table is held, the insert re-checks the
// conflict window inside the same transaction, so two concurrent
// bookings for the same window cannot both succeed.
func (s *reservationService) CreateReservation(ctx context.Context, input *CreateReservationInput) (*models.Reservation, error) {
	if input.GuestCount < 1 {
		return nil, common.ValidationError("guest count must be at least 1")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, common.NotFoundError("restaurant")
	}

	res := &models.Reservation{
		ID:                uuid.New(),
		UserID:            input.UserID,
		RestaurantID:      input.RestaurantID,
		TableID:           input.TableID,
		ReservationNumber: s.newReservationNumber(),
		GuestCount:        input.GuestCount,
		StartsAt:          input.StartsAt,
		Status:            models.ReservationPending,
		SpecialRequests:   input.SpecialRequests,
		CreatedAt:         s.now(),
		UpdatedAt:         s.now(),
	}

	if input.TableID == nil {
		if err := s.reservationRepo.Create(ctx, res); err != nil {
			return nil, err
		}
		return res, nil
	}

	table, err := s.tableRepo.GetByID(ctx, *input.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, common.NotFoundError("table")
	}
	if table.RestaurantID != input.RestaurantID {
		return nil, common.ValidationError("table does not belong to this restaurant")
	}
	if !table.IsAvailable {
		return nil, common.ConflictError("table is not open for booking")
	}
	if input.GuestCount > table.Capacity {
		return nil, common.ValidationError("guest count %d exceeds table capacity %d", input.GuestCount, table.Capacity)
	}

	err = s.reservationRepo.CreateBooked(ctx, res,
		input.StartsAt.Add(-ConflictWindow), input.StartsAt.Add(ConflictWindow))
	if err != nil {
		if errors.Is(err, repositories.ErrTableConflict) {
			return nil, common.ConflictError("table is already reserved in the requested window")
		}
		return nil, err
	}
	return res, nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, common.NotFoundError("reservation")
	}
	return res, nil
}

// Confirm moves a reservation from PENDING to CONFIRMED and sends the
// confirmation notification.
func (s *reservationService) Confirm(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != models.ReservationPending {
		return nil, common.WrongStateError("can only confirm pending reservations, current status: %s", res.Status)
	}

	if err := s.setStatus(ctx, res, models.ReservationConfirmed); err != nil {
		return nil, err
	}

	s.notifier.EmailUser(res.UserID,
		fmt.Sprintf("Reservation Confirmed - #%s", res.ReservationNumber),
		fmt.Sprintf("Your reservation for %d guests on %s has been confirmed.",
			res.GuestCount, res.StartsAt.Format("Jan 2 at 15:04")))
	s.notifier.NotifyUser(res.UserID, models.NotificationReservation,
		"Reservation Confirmed",
		fmt.Sprintf("Reservation #%s confirmed", res.ReservationNumber),
		fmt.Sprintf("/reservations/%s", res.ID))

	return res, nil
}

// Cancel is allowed from any non-terminal state except COMPLETED and
// NO_SHOW.
func (s *reservationService) Cancel(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status == models.ReservationCompleted || res.Status == models.ReservationNoShow || res.Status == models.ReservationCancelled {
		return nil, common.WrongStateError("cannot cancel a reservation in status %s", res.Status)
	}
	if err := s.setStatus(ctx, res, models.ReservationCancelled); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *reservationService) Seat(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationSeated, models.ReservationConfirmed)
}

func (s *reservationService) Complete(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationCompleted, models.ReservationSeated)
}

// MarkNoShow is an administrative transition from CONFIRMED or SEATED
func (s *reservationService) MarkNoShow(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationNoShow, models.ReservationConfirmed, models.ReservationSeated)
}

func (s *reservationService) transition(ctx context.Context, id uuid.UUID, next models.ReservationStatus, allowedFrom ...models.ReservationStatus) (*models.Reservation, error) {
	res, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, from := range allowedFrom {
		if res.Status == from {
			if err := s.setStatus(ctx, res, next); err != nil {
				return nil, err
			}
			return res, nil
		}
	}
	return nil, common.InvalidTransitionError(string(res.Status), string(next))
}

func (s *reservationService) setStatus(ctx context.Context, res *models.Reservation, next models.ReservationStatus) error {
	if err := s.reservationRepo.UpdateStatus(ctx, res.ID, next); err != nil {
		return err
	}
	res.Status = next
	res.UpdatedAt = s.now()
	return nil
}

// SendReminders notifies every CONFIRMED reservation starting between
// one hour and ninety minutes from now. The persisted reminder flag is
// flipped with a conditional update first, so overlapping sweep runs
// deliver at most one reminder per reservation.
func (s *reservationService) SendReminders(ctx context.Context) (int, error) {
	from := s.now().Add(reminderLead)
	to := s.now().Add(reminderLead + reminderSlack)

	upcoming, err := s.reservationRepo.ListConfirmedBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, res := range upcoming {
		claimed, err := s.reservationRepo.MarkReminderSent(ctx, res.ID)
		if err != nil {
			log.Printf("Failed to mark reminder for reservation %s: %v", res.ID, err)
			continue
		}
		if !claimed {
			continue
		}
		s.notifier.EmailUser(res.UserID,
			fmt.Sprintf("Reservation Reminder - #%s", res.ReservationNumber),
			fmt.Sprintf("This is a reminder for your reservation today at %s for %d guests.",
				res.StartsAt.Format("15:04"), res.GuestCount))
		sent++
	}
	return sent, nil
}

// CancelExpired cancels reservations that sat in PENDING for 24 hours
// or more.
func (s *reservationService) CancelExpired(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-pendingExpiry)
	expired, err := s.reservationRepo.ListPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, res := range expired {
		if err := s.reservationRepo.UpdateStatus(ctx, res.ID, models.ReservationCancelled); err != nil {
			log.Printf("Failed to auto-cancel reservation %s: %v", res.ID, err)
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

func (s *reservationService) newReservationNumber() string {
	return fmt.Sprintf("RES-%s-%s", s.now().Format("20060102"), random.String(6, random.Uppercase+random.Numeric))
}
