package repositories

import (
	"context"

	"dinemart/internal/models"

	"github.com/google/uuid"
)

type OrderItemRepository interface {
	CreateMany(ctx context.Context, items []*models.OrderItem) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
}

type orderItemRepo struct {
	db DB
}

func NewOrderItemRepo(db DB) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) CreateMany(ctx context.Context, items []*models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, menu_item_id, menu_item_name, quantity, unit_price, subtotal, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, item := range items {
		if _, err := r.db.Exec(ctx, query,
			item.ID, item.OrderID, item.MenuItemID, item.MenuItemName,
			item.Quantity, item.UnitPrice, item.Subtotal, item.SpecialInstructions); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_item_id, menu_item_name, quantity, unit_price, subtotal, special_instructions
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal, &item.SpecialInstructions); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
