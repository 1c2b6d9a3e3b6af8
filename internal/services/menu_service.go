package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"dinemart/internal/caching"
	"dinemart/internal/common"
	"dinemart/internal/models"
	"dinemart/internal/repositories"

	"github.com/google/uuid"
)

const (
	MediaBucket = "dinemart-media"

	catalogCacheTTL = 10 * time.Minute
	imageURLExpiry  = time.Hour

	// Shorter than imageURLExpiry so a cached link is never served
	// after the signature lapses.
	imageURLCacheTTL = 45 * time.Minute
)

// RestaurantView is a restaurant plus its resolved image URL
type RestaurantView struct {
	*models.Restaurant
	ImageURL string `json:"image_url,omitempty"`
}

// MenuItemView is a menu item plus its resolved image URL
type MenuItemView struct {
	*models.MenuItem
	ImageURL string `json:"image_url,omitempty"`
}

type MenuServiceInterface interface {
	GetRestaurant(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
	ListRestaurants(ctx context.Context, limit, offset int) ([]*RestaurantView, error)
	GetMenu(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItemView, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*MenuItemView, error)
	UploadMenuItemImage(ctx context.Context, itemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	UploadRestaurantImage(ctx context.Context, restaurantID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
}

type menuService struct {
	restaurantRepo repositories.RestaurantRepository
	menuRepo       repositories.MenuItemRepository
	cache          caching.CacheService
	media          MediaService
}

func NewMenuService(restaurantRepo repositories.RestaurantRepository, menuRepo repositories.MenuItemRepository,
	cache caching.CacheService, media MediaService) MenuServiceInterface {
	return &menuService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		cache:          cache,
		media:          media,
	}
}

// GetRestaurant reads through the cache. Cache failures are logged and
// fall back to the database.
func (s *menuService) GetRestaurant(ctx context.Context, id uuid.UUID) (*RestaurantView, error) {
	if cached, err := s.cache.GetRestaurant(ctx, id); err != nil {
		log.Printf("Cache read failed for restaurant %s: %v", id, err)
	} else if cached != nil {
		return s.restaurantView(ctx, cached), nil
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, common.NotFoundError("restaurant")
	}

	if err := s.cache.SetRestaurant(ctx, restaurant, catalogCacheTTL); err != nil {
		log.Printf("Cache write failed for restaurant %s: %v", id, err)
	}
	return s.restaurantView(ctx, restaurant), nil
}

func (s *menuService) ListRestaurants(ctx context.Context, limit, offset int) ([]*RestaurantView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	restaurants, err := s.restaurantRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*RestaurantView, 0, len(restaurants))
	for _, restaurant := range restaurants {
		views = append(views, s.restaurantView(ctx, restaurant))
	}
	return views, nil
}

func (s *menuService) GetMenu(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItemView, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, common.NotFoundError("restaurant")
	}

	items, err := s.menuRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	views := make([]*MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, s.menuItemView(ctx, item))
	}
	return views, nil
}

func (s *menuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*MenuItemView, error) {
	if cached, err := s.cache.GetMenuItem(ctx, id); err != nil {
		log.Printf("Cache read failed for menu item %s: %v", id, err)
	} else if cached != nil {
		return s.menuItemView(ctx, cached), nil
	}

	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, common.NotFoundError("menu item")
	}

	if err := s.cache.SetMenuItem(ctx, item, catalogCacheTTL); err != nil {
		log.Printf("Cache write failed for menu item %s: %v", id, err)
	}
	return s.menuItemView(ctx, item), nil
}

// UploadMenuItemImage stores the image and records the object name,
// invalidating the cached item.
func (s *menuService) UploadMenuItemImage(ctx context.Context, itemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", common.NotFoundError("menu item")
	}

	objectName := fmt.Sprintf("menu-items/%s/%s", item.RestaurantID, uuid.New())
	if err := s.media.UploadImage(ctx, MediaBucket, objectName, reader, size, contentType); err != nil {
		return "", err
	}
	if err := s.menuRepo.SetImageObject(ctx, itemID, objectName); err != nil {
		return "", err
	}
	if err := s.cache.DeleteMenuItem(ctx, itemID); err != nil {
		log.Printf("Cache invalidation failed for menu item %s: %v", itemID, err)
	}
	s.removeReplacedImage(ctx, item.ImageObject)
	return objectName, nil
}

func (s *menuService) UploadRestaurantImage(ctx context.Context, restaurantID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return "", err
	}
	if restaurant == nil {
		return "", common.NotFoundError("restaurant")
	}

	objectName := fmt.Sprintf("restaurants/%s/%s", restaurantID, uuid.New())
	if err := s.media.UploadImage(ctx, MediaBucket, objectName, reader, size, contentType); err != nil {
		return "", err
	}
	if err := s.restaurantRepo.SetImageObject(ctx, restaurantID, objectName); err != nil {
		return "", err
	}
	if err := s.cache.DeleteRestaurant(ctx, restaurantID); err != nil {
		log.Printf("Cache invalidation failed for restaurant %s: %v", restaurantID, err)
	}
	s.removeReplacedImage(ctx, restaurant.ImageObject)
	return objectName, nil
}

func (s *menuService) restaurantView(ctx context.Context, restaurant *models.Restaurant) *RestaurantView {
	view := &RestaurantView{Restaurant: restaurant}
	view.ImageURL = s.presign(ctx, restaurant.ImageObject)
	return view
}

func (s *menuService) menuItemView(ctx context.Context, item *models.MenuItem) *MenuItemView {
	view := &MenuItemView{MenuItem: item}
	view.ImageURL = s.presign(ctx, item.ImageObject)
	return view
}

func (s *menuService) presign(ctx context.Context, objectName *string) string {
	if objectName == nil || *objectName == "" || s.media == nil {
		return ""
	}
	key := imageURLKey(*objectName)
	if url, err := s.cache.GetString(ctx, key); err == nil && url != "" {
		return url
	}

	url, err := s.media.GetPresignedURL(ctx, MediaBucket, *objectName, imageURLExpiry)
	if err != nil {
		log.Printf("Failed to presign %s: %v", *objectName, err)
		return ""
	}
	if err := s.cache.SetString(ctx, key, url, imageURLCacheTTL); err != nil {
		log.Printf("Cache write failed for %s: %v", key, err)
	}
	return url
}

func imageURLKey(objectName string) string { return "image_url:" + objectName }

// removeReplacedImage deletes a superseded image object and its cached
// signed URL. Failures only leave an orphan behind, so they are logged
// and not surfaced.
func (s *menuService) removeReplacedImage(ctx context.Context, objectName *string) {
	if objectName == nil || *objectName == "" {
		return
	}
	if err := s.media.DeleteImage(ctx, MediaBucket, *objectName); err != nil {
		log.Printf("Failed to delete replaced image %s: %v", *objectName, err)
	}
	if err := s.cache.Delete(ctx, imageURLKey(*objectName)); err != nil {
		log.Printf("Cache invalidation failed for %s: %v", *objectName, err)
	}
}
