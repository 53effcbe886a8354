package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"foodmarket/internal/cache"
	"foodmarket/internal/model"
	"foodmarket/pkg/database"
	"foodmarket/pkg/jwtutil"
	"foodmarket/pkg/logger"
	"foodmarket/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var restaurantCache *cache.Cache

// InitRestaurantHandler wires the read cache used by the public restaurant routes
func InitRestaurantHandler(c *cache.Cache) {
	restaurantCache = c
}

// restaurantSummary is the public listing payload: the restaurant with its
// owner display fields and a menu item count.
type restaurantSummary struct {
	model.Restaurant
	MenuItemCount int64 `json:"menu_item_count"`
}

// ownedRestaurant is the merchant dashboard payload with item and order counts
type ownedRestaurant struct {
	model.Restaurant
	MenuItemCount int64 `json:"menu_item_count"`
	OrderCount    int64 `json:"order_count"`
}

// ListRestaurants returns all active restaurants, newest first, with owner
// display fields and menu item counts. Public endpoint, served from cache
// when possible.
func ListRestaurants(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	if restaurantCache != nil {
		if cached, ok := restaurantCache.Get(ctx, restaurantCache.RestaurantListKey()); ok {
			return c.JSONBlob(http.StatusOK, []byte(cached))
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	db := database.GetDB()

	var restaurants []model.Restaurant
	result := db.Where("is_active = ?", true).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order("created_at desc").
		Find(&restaurants)
	if result.Error != nil {
		log.Error("Failed to retrieve restaurants", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurants"})
	}

	counts, err := menuItemCounts(db)
	if err != nil {
		log.Error("Failed to count menu items", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurants"})
	}

	summaries := make([]restaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		summaries = append(summaries, restaurantSummary{
			Restaurant:    r,
			MenuItemCount: counts[r.ID],
		})
	}

	if restaurantCache != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			if err := restaurantCache.Set(ctx, restaurantCache.RestaurantListKey(), string(payload)); err != nil {
				log.Warn("Failed to cache restaurant list", zap.Error(err))
			}
		}
	}

	return c.JSON(http.StatusOK, summaries)
}

// GetRestaurant returns an active restaurant with its categorized menu.
// Inactive or missing restaurants respond 404. Public endpoint, cached.
func GetRestaurant(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid restaurant ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant ID"})
	}

	if restaurantCache != nil {
		if cached, ok := restaurantCache.Get(ctx, restaurantCache.RestaurantKey(uint(id))); ok {
			return c.JSONBlob(http.StatusOK, []byte(cached))
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	db := database.GetDB()

	var restaurant model.Restaurant
	result := db.Where("id = ? AND is_active = ?", id, true).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("name asc")
		}).
		Preload("Categories.MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("name asc")
		}).
		// Uncategorized items only; categorized ones render under their category
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ? AND category_id IS NULL", true).Order("name asc")
		}).
		First(&restaurant)
	if result.Error != nil {
		log.Warn("Restaurant not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}

	if restaurantCache != nil {
		if payload, err := json.Marshal(restaurant); err == nil {
			if err := restaurantCache.Set(ctx, restaurantCache.RestaurantKey(uint(id)), string(payload)); err != nil {
				log.Warn("Failed to cache restaurant detail", zap.Error(err))
			}
		}
	}

	return c.JSON(http.StatusOK, restaurant)
}

// CreateRestaurant creates a restaurant for a given owner. Admin only; the
// owner must be an existing user with the RESTAURANT_OWNER role.
func CreateRestaurant(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Address     string `json:"address"`
		Phone       string `json:"phone"`
		OwnerID     uint   `json:"owner_id"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse restaurant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Address == "" || req.OwnerID == 0 {
		log.Error("Invalid restaurant data", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}

	db := database.GetDB()

	// Verify the owner exists and carries the owner role
	defer prometheus.TrackDBOperation("query")(time.Now())
	var owner model.User
	if result := db.First(&owner, req.OwnerID); result.Error != nil || owner.Role != model.RoleRestaurantOwner {
		log.Error("Invalid restaurant owner", zap.Uint("owner_id", req.OwnerID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid owner"})
	}

	restaurant := model.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		OwnerID:     req.OwnerID,
		IsActive:    true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&restaurant); result.Error != nil {
		log.Error("Failed to create restaurant", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restaurant creation failed"})
	}

	restaurant.Owner = model.User{ID: owner.ID, Name: owner.Name, Email: owner.Email, Role: owner.Role}

	if restaurantCache != nil {
		if err := restaurantCache.Invalidate(c.Request().Context(), restaurantCache.RestaurantListKey()); err != nil {
			log.Warn("Failed to invalidate restaurant list cache", zap.Error(err))
		}
	}

	log.Info("Restaurant created",
		zap.String("name", restaurant.Name),
		zap.Uint("id", restaurant.ID),
		zap.Uint("owner_id", restaurant.OwnerID))

	return c.JSON(http.StatusCreated, restaurant)
}

// ListOwnedRestaurants returns the caller's restaurants with item and order
// counts. Requires the RESTAURANT_OWNER role.
func ListOwnedRestaurants(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	db := database.GetDB()

	var restaurants []model.Restaurant
	result := db.Where("owner_id = ?", claims.UserID).
		Order("created_at desc").
		Find(&restaurants)
	if result.Error != nil {
		log.Error("Failed to retrieve owned restaurants",
			zap.Uint("owner_id", claims.UserID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurants"})
	}

	itemCounts, err := menuItemCounts(db)
	if err != nil {
		log.Error("Failed to count menu items", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurants"})
	}
	orderCounts, err := orderCounts(db)
	if err != nil {
		log.Error("Failed to count orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurants"})
	}

	owned := make([]ownedRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		owned = append(owned, ownedRestaurant{
			Restaurant:    r,
			MenuItemCount: itemCounts[r.ID],
			OrderCount:    orderCounts[r.ID],
		})
	}

	return c.JSON(http.StatusOK, owned)
}

// menuItemCounts returns menu item counts grouped by restaurant
func menuItemCounts(db *gorm.DB) (map[uint]int64, error) {
	return groupedCounts(db.Model(&model.MenuItem{}))
}

// orderCounts returns order counts grouped by restaurant
func orderCounts(db *gorm.DB) (map[uint]int64, error) {
	return groupedCounts(db.Model(&model.Order{}))
}

func groupedCounts(query *gorm.DB) (map[uint]int64, error) {
	var rows []struct {
		RestaurantID uint
		N            int64
	}
	if err := query.Select("restaurant_id, count(*) as n").Group("restaurant_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.RestaurantID] = row.N
	}
	return counts, nil
}
