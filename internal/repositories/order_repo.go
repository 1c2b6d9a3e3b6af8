package repositories

import (
	"context"
	"errors"
	"time"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error)
	ListDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*models.Order, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, user_id, restaurant_id, order_number, order_type, status, subtotal, tax, delivery_fee, discount, total, delivery_address, delivery_instructions, estimated_delivery_time, actual_delivery_time, created_at, updated_at`

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, user_id, restaurant_id, order_number, order_type, status, subtotal, tax, delivery_fee, discount, total, delivery_address, delivery_instructions, estimated_delivery_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		order.ID, order.UserID, order.RestaurantID, order.OrderNumber, order.OrderType, order.Status,
		order.Subtotal, order.Tax, order.DeliveryFee, order.Discount, order.Total,
		order.DeliveryAddress, order.DeliveryInstructions, order.EstimatedDeliveryTime)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.RestaurantID, &order.OrderNumber, &order.OrderType, &order.Status,
		&order.Subtotal, &order.Tax, &order.DeliveryFee, &order.Discount, &order.Total,
		&order.DeliveryAddress, &order.DeliveryInstructions, &order.EstimatedDeliveryTime, &order.ActualDeliveryTime,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET status = $1, subtotal = $2, tax = $3, delivery_fee = $4, discount = $5, total = $6,
		    estimated_delivery_time = $7, actual_delivery_time = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query,
		order.Status, order.Subtotal, order.Tax, order.DeliveryFee, order.Discount, order.Total,
		order.EstimatedDeliveryTime, order.ActualDeliveryTime, order.ID)
	return err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *orderRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, restaurantID, limit, offset)
}

// ListDeliveredBefore returns orders sitting in DELIVERED since at or
// before the cutoff. The comparison is inclusive.
func (r *orderRepo) ListDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 AND updated_at <= $2`
	return r.list(ctx, query, models.OrderDelivered, cutoff)
}

func (r *orderRepo) list(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.RestaurantID, &order.OrderNumber, &order.OrderType, &order.Status,
			&order.Subtotal, &order.Tax, &order.DeliveryFee, &order.Discount, &order.Total,
			&order.DeliveryAddress, &order.DeliveryInstructions, &order.EstimatedDeliveryTime, &order.ActualDeliveryTime,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
