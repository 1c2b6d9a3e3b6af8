package repositories

import (
	"context"
	"errors"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RestaurantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]*models.Restaurant, error)
	SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error
}

type restaurantRepo struct {
	db DB
}

func NewRestaurantRepo(db DB) RestaurantRepository {
	return &restaurantRepo{db: db}
}

const restaurantColumns = `id, owner_id, name, email, phone, address, image_object, is_active, created_at, updated_at`

func (r *restaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID, &restaurant.OwnerID, &restaurant.Name, &restaurant.Email, &restaurant.Phone,
		&restaurant.Address, &restaurant.ImageObject, &restaurant.IsActive, &restaurant.CreatedAt, &restaurant.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return restaurant, nil
}

func (r *restaurantRepo) List(ctx context.Context, limit, offset int) ([]*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE is_active = TRUE ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		restaurant := &models.Restaurant{}
		if err := rows.Scan(
			&restaurant.ID, &restaurant.OwnerID, &restaurant.Name, &restaurant.Email, &restaurant.Phone,
			&restaurant.Address, &restaurant.ImageObject, &restaurant.IsActive, &restaurant.CreatedAt, &restaurant.UpdatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *restaurantRepo) SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error {
	_, err := r.db.Exec(ctx, `UPDATE restaurants SET image_object = $1, updated_at = NOW() WHERE id = $2`, objectName, id)
	return err
}
