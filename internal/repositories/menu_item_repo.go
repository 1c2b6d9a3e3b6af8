package repositories

import (
	"context"
	"errors"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuItemRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error)
	SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error
}

type menuItemRepo struct {
	db DB
}

func NewMenuItemRepo(db DB) MenuItemRepository {
	return &menuItemRepo{db: db}
}

const menuItemColumns = `id, restaurant_id, name, description, price, is_available, image_object, created_at, updated_at`

func (r *menuItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price,
		&item.IsAvailable, &item.ImageObject, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *menuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(
			&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price,
			&item.IsAvailable, &item.ImageObject, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuItemRepo) SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error {
	_, err := r.db.Exec(ctx, `UPDATE menu_items SET image_object = $1, updated_at = NOW() WHERE id = $2`, objectName, id)
	return err
}
