package repositories

import (
	"context"
	"errors"
	"time"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrTableConflict is returned when a transactional booking loses the
// race for a table's conflict window.
var ErrTableConflict = errors.New("table already reserved in the requested window")

type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) error
	// CreateBooked inserts a reservation holding a table. It locks the
	// table row and re-checks the ±window conflict inside the same
	// transaction, so two concurrent bookings can never both commit.
	CreateBooked(ctx context.Context, res *models.Reservation, windowStart, windowEnd time.Time) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error
	// BookedTableIDs returns the tables of a restaurant holding a
	// blocking reservation (PENDING/CONFIRMED/SEATED) whose start falls
	// inside [from, to], bounds inclusive.
	BookedTableIDs(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (map[uuid.UUID]struct{}, error)
	ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*models.Reservation, error)
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*models.Reservation, error)
	// MarkReminderSent flips the reminder flag and reports whether this
	// call was the one that flipped it.
	MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error)
}

type reservationRepo struct {
	db DB
}

func NewReservationRepo(db DB) ReservationRepository {
	return &reservationRepo{db: db}
}

const reservationColumns = `id, user_id, restaurant_id, table_id, reservation_number, guest_count, starts_at, status, special_requests, reminder_sent, created_at, updated_at`

const insertReservation = `
	INSERT INTO reservations (id, user_id, restaurant_id, table_id, reservation_number, guest_count, starts_at, status, special_requests, reminder_sent, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, NOW(), NOW())
`

var blockingStatuses = []models.ReservationStatus{
	models.ReservationPending,
	models.ReservationConfirmed,
	models.ReservationSeated,
}

func (r *reservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	_, err := r.db.Exec(ctx, insertReservation,
		res.ID, res.UserID, res.RestaurantID, res.TableID, res.ReservationNumber,
		res.GuestCount, res.StartsAt, res.Status, res.SpecialRequests)
	return err
}

func (r *reservationRepo) CreateBooked(ctx context.Context, res *models.Reservation, windowStart, windowEnd time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Serialize bookings per table.
	var tableID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM tables WHERE id = $1 FOR UPDATE`, *res.TableID).Scan(&tableID)
	if err != nil {
		return err
	}

	var conflicts int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE table_id = $1 AND status = ANY($2) AND starts_at BETWEEN $3 AND $4
	`, *res.TableID, blockingStatuses, windowStart, windowEnd).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrTableConflict
	}

	_, err = tx.Exec(ctx, insertReservation,
		res.ID, res.UserID, res.RestaurantID, res.TableID, res.ReservationNumber,
		res.GuestCount, res.StartsAt, res.Status, res.SpecialRequests)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *reservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	res := &models.Reservation{}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.UserID, &res.RestaurantID, &res.TableID, &res.ReservationNumber,
		&res.GuestCount, &res.StartsAt, &res.Status, &res.SpecialRequests, &res.ReminderSent,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

func (r *reservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error {
	query := `UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *reservationRepo) BookedTableIDs(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (map[uuid.UUID]struct{}, error) {
	query := `
		SELECT DISTINCT table_id FROM reservations
		WHERE restaurant_id = $1 AND table_id IS NOT NULL AND status = ANY($2) AND starts_at BETWEEN $3 AND $4
	`
	rows, err := r.db.Query(ctx, query, restaurantID, blockingStatuses, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		booked[id] = struct{}{}
	}
	return booked, rows.Err()
}

func (r *reservationRepo) ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = $1 AND reminder_sent = FALSE AND starts_at BETWEEN $2 AND $3`
	return r.list(ctx, query, models.ReservationConfirmed, from, to)
}

func (r *reservationRepo) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = $1 AND created_at <= $2`
	return r.list(ctx, query, models.ReservationPending, cutoff)
}

func (r *reservationRepo) MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE reservations SET reminder_sent = TRUE, updated_at = NOW() WHERE id = $1 AND reminder_sent = FALSE`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *reservationRepo) list(ctx context.Context, query string, args ...any) ([]*models.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		res := &models.Reservation{}
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.RestaurantID, &res.TableID, &res.ReservationNumber,
			&res.GuestCount, &res.StartsAt, &res.Status, &res.SpecialRequests, &res.ReminderSent,
			&res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
