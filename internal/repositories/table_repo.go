package repositories

import (
	"context"
	"errors"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TableRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

type tableRepo struct {
	db DB
}

func NewTableRepo(db DB) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	table := &models.Table{}
	query := `
		SELECT id, restaurant_id, table_number, capacity, is_available, created_at
		FROM tables
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&table.ID, &table.RestaurantID, &table.TableNumber, &table.Capacity, &table.IsAvailable, &table.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return table, nil
}

func (r *tableRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error) {
	query := `
		SELECT id, restaurant_id, table_number, capacity, is_available, created_at
		FROM tables
		WHERE restaurant_id = $1
		ORDER BY table_number
	`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.RestaurantID, &table.TableNumber, &table.Capacity, &table.IsAvailable, &table.CreatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *tableRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	_, err := r.db.Exec(ctx, `UPDATE tables SET is_available = $1 WHERE id = $2`, available, id)
	return err
}
