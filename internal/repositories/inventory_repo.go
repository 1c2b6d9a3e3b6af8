package repositories

import (
	"context"

	"dinemart/internal/models"

	"github.com/google/uuid"
)

type InventoryRepository interface {
	ListLowStock(ctx context.Context) ([]*models.InventoryItem, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error
}

type inventoryRepo struct {
	db DB
}

func NewInventoryRepo(db DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) ListLowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	query := `
		SELECT id, restaurant_id, name, unit, quantity, low_stock_threshold, updated_at
		FROM inventory_items
		WHERE quantity <= low_stock_threshold
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Unit, &item.Quantity, &item.LowStockThreshold, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	_, err := r.db.Exec(ctx, `UPDATE inventory_items SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2`, delta, id)
	return err
}
