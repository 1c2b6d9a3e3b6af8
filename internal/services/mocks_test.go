package services

import (
	"context"
	"time"

	"dinemart/internal/models"
	"dinemart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Mock repositories shared across the service tests

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*models.Order, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*models.Order), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateMany(ctx context.Context, items []*models.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error {
	args := m.Called(ctx, id, objectName)
	return args.Error(0)
}

type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) List(ctx context.Context, limit, offset int) ([]*models.Restaurant, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) SetImageObject(ctx context.Context, id uuid.UUID, objectName string) error {
	args := m.Called(ctx, id, objectName)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) Create(ctx context.Context, promo *models.Promotion) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) Update(ctx context.Context, promo *models.Promotion) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromotionRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) CreateBooked(ctx context.Context, res *models.Reservation, windowStart, windowEnd time.Time) error {
	args := m.Called(ctx, res, windowStart, windowEnd)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) BookedTableIDs(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (map[uuid.UUID]struct{}, error) {
	args := m.Called(ctx, restaurantID, from, to)
	return args.Get(0).(map[uuid.UUID]struct{}), args.Error(1)
}

func (m *MockReservationRepository) ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*models.Reservation, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*models.Reservation, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]*models.Table), args.Error(1)
}

func (m *MockTableRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

type MockPromotionServiceIface struct {
	mock.Mock
}

func (m *MockPromotionServiceIface) Validate(ctx context.Context, code string, subtotal decimal.Decimal, restaurantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, code, subtotal, restaurantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPromotionServiceIface) Apply(ctx context.Context, code string, subtotal decimal.Decimal, restaurantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, code, subtotal, restaurantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPromotionServiceIface) CreatePromotion(ctx context.Context, input CreatePromotionInput) (*models.Promotion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *MockPromotionServiceIface) SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) (*models.Promotion, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

// sentNotification records a fire-and-forget notifier call
type sentNotification struct {
	userID  uuid.UUID
	kind    string // "email" or "in_app"
	subject string
	message string
}

// recordingNotifier captures notifications without a queue
type recordingNotifier struct {
	sent []sentNotification
}

func (n *recordingNotifier) EmailUser(userID uuid.UUID, subject, body string) {
	n.sent = append(n.sent, sentNotification{userID: userID, kind: "email", subject: subject, message: body})
}

func (n *recordingNotifier) NotifyUser(userID uuid.UUID, ntype models.NotificationType, title, message, link string) {
	n.sent = append(n.sent, sentNotification{userID: userID, kind: "in_app", subject: title, message: message})
}

func (n *recordingNotifier) emailCount() int {
	count := 0
	for _, s := range n.sent {
		if s.kind == "email" {
			count++
		}
	}
	return count
}

// Interface conformance checks
var (
	_ repositories.OrderRepository       = (*MockOrderRepository)(nil)
	_ repositories.OrderItemRepository   = (*MockOrderItemRepository)(nil)
	_ repositories.MenuItemRepository    = (*MockMenuItemRepository)(nil)
	_ repositories.RestaurantRepository  = (*MockRestaurantRepository)(nil)
	_ repositories.PaymentRepository     = (*MockPaymentRepository)(nil)
	_ repositories.PromotionRepository   = (*MockPromotionRepository)(nil)
	_ repositories.ReservationRepository = (*MockReservationRepository)(nil)
	_ repositories.TableRepository       = (*MockTableRepository)(nil)
	_ PromotionServiceInterface          = (*MockPromotionServiceIface)(nil)
	_ Notifier                           = (*recordingNotifier)(nil)
)
