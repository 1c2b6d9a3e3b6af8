package services

import (
	"context"
	"time"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/repositories"

	"github.com/google/uuid"
)

// ConflictWindow is the interval around a reservation during which the
// same table cannot be booked again.
const ConflictWindow = time.Hour

// AvailabilityResult reports whether any table fits a request, plus
// the concrete tables usable for booking.
type AvailabilityResult struct {
	Available bool            `json:"available"`
	Count     int             `json:"count"`
	Tables    []*models.Table `json:"tables"`
}

type AvailabilityServiceInterface interface {
	FindAvailableTables(ctx context.Context, restaurantID uuid.UUID, startsAt time.Time, partySize int) (*AvailabilityResult, error)
}

type availabilityService struct {
	tableRepo       repositories.TableRepository
	reservationRepo repositories.ReservationRepository
}

func NewAvailabilityService(tableRepo repositories.TableRepository, reservationRepo repositories.ReservationRepository) AvailabilityServiceInterface {
	return &availabilityService{tableRepo: tableRepo, reservationRepo: reservationRepo}
}

// FindAvailableTables returns the restaurant's tables that seat the
// party and hold no blocking reservation within ±1h of the requested
// instant. The window is computed on the combined date+time, so it may
// span two calendar dates around midnight.
func (s *availabilityService) FindAvailableTables(ctx context.Context, restaurantID uuid.UUID, startsAt time.Time, partySize int) (*AvailabilityResult, error) {
	if partySize < 1 {
		return nil, common.ValidationError("party size must be at least 1")
	}

	tables, err := s.tableRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	booked, err := s.reservationRepo.BookedTableIDs(ctx, restaurantID,
		startsAt.Add(-ConflictWindow), startsAt.Add(ConflictWindow))
	if err != nil {
		return nil, err
	}

	available := make([]*models.Table, 0)
	for _, table := range tables {
		if table.Capacity < partySize || !table.IsAvailable {
			continue
		}
		if _, taken := booked[table.ID]; taken {
			continue
		}
		available = append(available, table)
	}

	return &AvailabilityResult{
		Available: len(available) > 0,
		Count:     len(available),
		Tables:    available,
	}, nil
}
