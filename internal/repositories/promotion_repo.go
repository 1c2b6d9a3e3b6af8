package repositories

import (
	"context"
	"errors"
	"strings"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PromotionRepository interface {
	Create(ctx context.Context, promo *models.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
	GetByCode(ctx context.Context, code string) (*models.Promotion, error)
	Update(ctx context.Context, promo *models.Promotion) error
	// IncrementUsage bumps current_uses atomically, guarded by the
	// usage cap in SQL. It reports whether the increment happened;
	// false means the cap was already reached (possibly by a
	// concurrent application).
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
}

type promotionRepo struct {
	db DB
}

func NewPromotionRepo(db DB) PromotionRepository {
	return &promotionRepo{db: db}
}

const promotionColumns = `id, restaurant_id, code, name, description, discount_type, discount_value, max_discount, minimum_order_amount, start_date, end_date, max_uses, current_uses, is_active, created_at, updated_at`

func (r *promotionRepo) Create(ctx context.Context, promo *models.Promotion) error {
	query := `
		INSERT INTO promotions (id, restaurant_id, code, name, description, discount_type, discount_value, max_discount, minimum_order_amount, start_date, end_date, max_uses, current_uses, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		promo.ID, promo.RestaurantID, strings.ToUpper(promo.Code), promo.Name, promo.Description,
		promo.DiscountType, promo.DiscountValue, promo.MaxDiscount, promo.MinimumOrderAmount,
		promo.StartDate, promo.EndDate, promo.MaxUses, promo.IsActive)
	return err
}

func (r *promotionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *promotionRepo) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE code = $1`
	return r.get(ctx, query, strings.ToUpper(strings.TrimSpace(code)))
}

func (r *promotionRepo) Update(ctx context.Context, promo *models.Promotion) error {
	query := `
		UPDATE promotions
		SET name = $1, description = $2, discount_type = $3, discount_value = $4, max_discount = $5,
		    minimum_order_amount = $6, start_date = $7, end_date = $8, max_uses = $9, is_active = $10,
		    updated_at = NOW()
		WHERE id = $11
	`
	_, err := r.db.Exec(ctx, query,
		promo.Name, promo.Description, promo.DiscountType, promo.DiscountValue, promo.MaxDiscount,
		promo.MinimumOrderAmount, promo.StartDate, promo.EndDate, promo.MaxUses, promo.IsActive, promo.ID)
	return err
}

func (r *promotionRepo) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE promotions
		SET current_uses = current_uses + 1, updated_at = NOW()
		WHERE id = $1 AND (max_uses IS NULL OR current_uses < max_uses)
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *promotionRepo) get(ctx context.Context, query string, args ...any) (*models.Promotion, error) {
	promo := &models.Promotion{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&promo.ID, &promo.RestaurantID, &promo.Code, &promo.Name, &promo.Description,
		&promo.DiscountType, &promo.DiscountValue, &promo.MaxDiscount, &promo.MinimumOrderAmount,
		&promo.StartDate, &promo.EndDate, &promo.MaxUses, &promo.CurrentUses, &promo.IsActive,
		&promo.CreatedAt, &promo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return promo, nil
}
