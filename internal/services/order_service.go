package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"github.com/shopspring/decimal"
)

// Pricing rules applied at order creation
var (
	taxRate             = decimal.NewFromFloat(0.10)
	deliveryFee         = decimal.NewFromInt(5)
	freeDeliveryMinimum = decimal.NewFromInt(30)
)

// orderTransitions is the full transition table. Any pair not listed
// here is rejected.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:        {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed:      {models.OrderPreparing, models.OrderCancelled},
	models.OrderPreparing:      {models.OrderReady},
	models.OrderReady:          {models.OrderOutForDelivery, models.OrderCompleted},
	models.OrderOutForDelivery: {models.OrderDelivered},
	models.OrderDelivered:      {models.OrderCompleted},
}

var orderStatusMessages = map[models.OrderStatus]string{
	models.OrderConfirmed:      "Your order has been confirmed and will be prepared soon.",
	models.OrderPreparing:      "Your order is being prepared.",
	models.OrderReady:          "Your order is ready!",
	models.OrderOutForDelivery: "Your order is out for delivery.",
	models.OrderDelivered:      "Your order has been delivered. Enjoy your meal!",
}

// CreateOrderItemInput is one requested line item
type CreateOrderItemInput struct {
	MenuItemID          uuid.UUID `json:"menu_item_id"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions *string   `json:"special_instructions,omitempty"`
}

// CreateOrderInput carries everything needed to place an order
type CreateOrderInput struct {
	UserID               uuid.UUID               `json:"user_id"`
	RestaurantID         uuid.UUID               `json:"restaurant_id"`
	OrderType            models.OrderType        `json:"order_type"`
	DeliveryAddress      *models.DeliveryAddress `json:"delivery_address,omitempty"`
	DeliveryInstructions *string                 `json:"delivery_instructions,omitempty"`
	Items                []CreateOrderItemInput  `json:"items"`
}

// PromoApplyResult is returned after a promo code is applied
type PromoApplyResult struct {
	Discount decimal.Decimal `json:"discount"`
	NewTotal decimal.Decimal `json:"new_total"`
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error)
	ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
	ApplyPromotion(ctx context.Context, orderID uuid.UUID, code string) (*PromoApplyResult, error)
	TransitionStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus, actorRole string) (*models.Order, error)
	Track(ctx context.Context, orderID uuid.UUID) (*models.OrderTracking, error)
	CompleteDeliveredOrders(ctx context.Context) (int, error)
}

type orderService struct {
	orderRepo      repositories.OrderRepository
	itemRepo       repositories.OrderItemRepository
	menuRepo       repositories.MenuItemRepository
	restaurantRepo repositories.RestaurantRepository
	paymentRepo    repositories.PaymentRepository
	promoSvc       PromotionServiceInterface
	notifier       Notifier
	now            func() time.Time
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repositories.OrderRepository, itemRepo repositories.OrderItemRepository,
	menuRepo repositories.MenuItemRepository, restaurantRepo repositories.RestaurantRepository,
	paymentRepo repositories.PaymentRepository, promoSvc PromotionServiceInterface, notifier Notifier) OrderServiceInterface {
	return &orderService{
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		paymentRepo:    paymentRepo,
		promoSvc:       promoSvc,
		notifier:       notifier,
		now:            time.Now,
	}
}

// CreateOrder prices the requested items from the current menu,
// snapshots unit prices onto the line items and creates the order in
// PENDING. Both the customer and the restaurant owner are notified.
func (s *orderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, common.ValidationError("order must contain at least one item")
	}
	switch input.OrderType {
	case models.OrderTypeDelivery, models.OrderTypeTakeout, models.OrderTypeDineIn:
	default:
		return nil, common.ValidationError("invalid order type: %s", input.OrderType)
	}
	if input.OrderType == models.OrderTypeDelivery && input.DeliveryAddress == nil {
		return nil, common.ValidationError("delivery address is required for delivery orders")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, common.NotFoundError("restaurant")
	}

	orderID := uuid.New()
	subtotal := decimal.Zero
	items := make([]*models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, common.ValidationError("item quantity must be at least 1")
		}
		menuItem, err := s.menuRepo.GetByID(ctx, in.MenuItemID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, common.NotFoundError("menu item")
		}
		if menuItem.RestaurantID != input.RestaurantID {
			return nil, common.ValidationError("menu item %s does not belong to this restaurant", menuItem.Name)
		}
		if !menuItem.IsAvailable {
			return nil, common.ValidationError("menu item %s is not available", menuItem.Name)
		}
		lineSubtotal := menuItem.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		items = append(items, &models.OrderItem{
			ID:                  uuid.New(),
			OrderID:             orderID,
			MenuItemID:          menuItem.ID,
			MenuItemName:        menuItem.Name,
			Quantity:            in.Quantity,
			UnitPrice:           menuItem.Price,
			Subtotal:            lineSubtotal,
			SpecialInstructions: in.SpecialInstructions,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	order := &models.Order{
		ID:                   orderID,
		UserID:               input.UserID,
		RestaurantID:         input.RestaurantID,
		OrderNumber:          s.newOrderNumber(),
		OrderType:            input.OrderType,
		Status:               models.OrderPending,
		Subtotal:             subtotal,
		Tax:                  subtotal.Mul(taxRate).Round(2),
		Discount:             decimal.Zero,
		DeliveryAddress:      input.DeliveryAddress,
		DeliveryInstructions: input.DeliveryInstructions,
		CreatedAt:            s.now(),
		UpdatedAt:            s.now(),
	}
	order.DeliveryFee = decimal.Zero
	if input.OrderType == models.OrderTypeDelivery && !subtotal.GreaterThan(freeDeliveryMinimum) {
		order.DeliveryFee = deliveryFee
	}
	order.RecomputeTotal()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := s.itemRepo.CreateMany(ctx, items); err != nil {
		return nil, err
	}

	// Record the charge; the gateway settles it out of band.
	payment := &models.Payment{
		ID:      uuid.New(),
		OrderID: order.ID,
		Amount:  order.Total,
		Status:  models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		log.Printf("Failed to record payment for order %s: %v", order.ID, err)
	}

	s.notifier.EmailUser(order.UserID,
		fmt.Sprintf("Order Confirmation - #%s", order.OrderNumber),
		fmt.Sprintf("Your order at %s has been received. Total: $%s", restaurant.Name, order.Total.StringFixed(2)))
	s.notifier.NotifyUser(order.UserID, models.NotificationOrder,
		"Order Placed",
		fmt.Sprintf("Order #%s placed - $%s", order.OrderNumber, order.Total.StringFixed(2)),
		fmt.Sprintf("/orders/%s", order.ID))
	s.notifier.NotifyUser(restaurant.OwnerID, models.NotificationOrder,
		"New Order",
		fmt.Sprintf("New order #%s - $%s", order.OrderNumber, order.Total.StringFixed(2)),
		fmt.Sprintf("/dashboard/orders/%s", order.ID))

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, common.NotFoundError("order")
	}
	return order, nil
}

func (s *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *orderService) ListOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.ListByRestaurant(ctx, restaurantID, limit, offset)
}

func (s *orderService) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	if _, err := s.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByOrder(ctx, orderID)
}

// ApplyPromotion applies a promo code to a pending order. The usage
// counter is consumed exactly once, by Apply, never by validation.
func (s *orderService) ApplyPromotion(ctx context.Context, orderID uuid.UUID, code string) (*PromoApplyResult, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderPending {
		return nil, common.WrongStateError("can only apply promo to pending orders")
	}

	discount, err := s.promoSvc.Apply(ctx, code, order.Subtotal, order.RestaurantID)
	if err != nil {
		return nil, err
	}

	order.Discount = discount
	order.RecomputeTotal()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return &PromoApplyResult{Discount: discount, NewTotal: order.Total}, nil
}

// TransitionStatus moves an order through its lifecycle. Customers may
// only request cancellation; staff, owners and admins drive the
// forward chain. Side effects are decided purely from the (old, new)
// status pair.
func (s *orderService) TransitionStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus, actorRole string) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actorRole == models.RoleCustomer && next != models.OrderCancelled {
		return nil, common.WrongStateError("customers may only cancel orders")
	}
	if !transitionAllowed(order.Status, next) {
		return nil, common.InvalidTransitionError(string(order.Status), string(next))
	}

	previous := order.Status
	order.Status = next
	order.UpdatedAt = s.now()
	if err := s.orderRepo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}

	s.dispatchTransition(ctx, order, previous, next)
	return order, nil
}

func transitionAllowed(current, next models.OrderStatus) bool {
	for _, allowed := range orderTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// dispatchTransition fires the side effects owed for a completed
// transition. Notification delivery is fire-and-forget; refund state
// is flipped synchronously because it is part of the order's own data.
func (s *orderService) dispatchTransition(ctx context.Context, order *models.Order, previous, next models.OrderStatus) {
	if next == models.OrderCancelled {
		s.processRefund(ctx, order)
		s.notifier.EmailUser(order.UserID,
			fmt.Sprintf("Order Cancelled - #%s", order.OrderNumber),
			fmt.Sprintf("Your order #%s has been cancelled.", order.OrderNumber))
		s.notifier.NotifyUser(order.UserID, models.NotificationOrder,
			"Order Cancelled",
			fmt.Sprintf("Order #%s has been cancelled", order.OrderNumber),
			fmt.Sprintf("/orders/%s", order.ID))
		return
	}

	if message, ok := orderStatusMessages[next]; ok {
		s.notifier.EmailUser(order.UserID,
			fmt.Sprintf("Order Update - #%s", order.OrderNumber), message)
		s.notifier.NotifyUser(order.UserID, models.NotificationOrder,
			"Order Update", message, fmt.Sprintf("/orders/%s", order.ID))
	}
}

func (s *orderService) processRefund(ctx context.Context, order *models.Order) {
	payment, err := s.paymentRepo.GetByOrder(ctx, order.ID)
	if err != nil {
		log.Printf("Failed to look up payment for order %s: %v", order.ID, err)
		return
	}
	if payment == nil || payment.Status != models.PaymentSucceeded {
		return
	}
	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, models.PaymentRefunded); err != nil {
		log.Printf("Failed to refund payment %s: %v", payment.ID, err)
		return
	}
	s.notifier.EmailUser(order.UserID,
		"Order Cancelled - Refund Processed",
		fmt.Sprintf("Your order #%s has been cancelled and refunded.", order.OrderNumber))
}

// Track returns the customer-facing tracking view
func (s *orderService) Track(ctx context.Context, orderID uuid.UUID) (*models.OrderTracking, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	currentIndex := 0
	for i, status := range models.OrderStatusChain {
		if status == order.Status {
			currentIndex = i
			break
		}
	}

	return &models.OrderTracking{
		OrderID:               order.ID,
		OrderNumber:           order.OrderNumber,
		Status:                order.Status,
		CurrentStep:           currentIndex + 1,
		TotalSteps:            len(models.OrderStatusChain),
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}, nil
}

// CompleteDeliveredOrders promotes orders sitting in DELIVERED for one
// hour or more to COMPLETED, without further notification. One order
// failing never aborts the batch.
func (s *orderService) CompleteDeliveredOrders(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-time.Hour)
	orders, err := s.orderRepo.ListDeliveredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, order := range orders {
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, models.OrderCompleted); err != nil {
			log.Printf("Failed to auto-complete order %s: %v", order.ID, err)
			continue
		}
		completed++
	}
	return completed, nil
}

func (s *orderService) newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", s.now().Format("20060102"), random.String(6, random.Uppercase+random.Numeric))
}
