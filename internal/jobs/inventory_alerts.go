package jobs

import (
	"context"
	"fmt"
	"log"

	"dinemart/internal/models"
	"dinemart/internal/repositories"
	"dinemart/internal/services"
)

// InventoryAlertService flags kitchen stock that fell to or below its
// threshold and notifies the restaurant owner.
type InventoryAlertService struct {
	inventoryRepo  repositories.InventoryRepository
	restaurantRepo repositories.RestaurantRepository
	notifier       services.Notifier
}

func NewInventoryAlertService(inventoryRepo repositories.InventoryRepository,
	restaurantRepo repositories.RestaurantRepository, notifier services.Notifier) *InventoryAlertService {
	return &InventoryAlertService{
		inventoryRepo:  inventoryRepo,
		restaurantRepo: restaurantRepo,
		notifier:       notifier,
	}
}

// CheckLowStock notifies each restaurant owner once per run with the
// items that are running low. Returns the number of low items found.
func (a *InventoryAlertService) CheckLowStock(ctx context.Context) (int, error) {
	items, err := a.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	byRestaurant := make(map[string][]*models.InventoryItem)
	for _, item := range items {
		byRestaurant[item.RestaurantID.String()] = append(byRestaurant[item.RestaurantID.String()], item)
	}

	for _, group := range byRestaurant {
		restaurant, err := a.restaurantRepo.GetByID(ctx, group[0].RestaurantID)
		if err != nil || restaurant == nil {
			log.Printf("Failed to resolve restaurant %s for stock alert: %v", group[0].RestaurantID, err)
			continue
		}

		message := fmt.Sprintf("%d inventory items are low on stock", len(group))
		if len(group) == 1 {
			message = fmt.Sprintf("'%s' is low on stock: %d %s left (threshold %d)",
				group[0].Name, group[0].Quantity, group[0].Unit, group[0].LowStockThreshold)
		}
		a.notifier.NotifyUser(restaurant.OwnerID, models.NotificationSystem, "Low Stock Alert", message,
			fmt.Sprintf("/restaurants/%s/inventory", restaurant.ID))
	}

	return len(items), nil
}
