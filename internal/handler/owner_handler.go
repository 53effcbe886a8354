package handler

import (
	"net/http"
	"time"

	"foodmarket/internal/model"
	"foodmarket/pkg/database"
	"foodmarket/pkg/logger"
	"foodmarket/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ownerSummary is the admin dashboard payload for a restaurant owner
type ownerSummary struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"created_at"`
	RestaurantCount int64     `json:"restaurant_count"`
}

// ListOwners returns all users with the RESTAURANT_OWNER role and how many
// restaurants each owns. Admin only.
func ListOwners(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	db := database.GetDB()

	var owners []model.User
	result := db.Where("role = ?", model.RoleRestaurantOwner).
		Order("name asc").
		Find(&owners)
	if result.Error != nil {
		log.Error("Failed to retrieve owners", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch owners"})
	}

	var rows []struct {
		OwnerID uint
		N       int64
	}
	err := db.Model(&model.Restaurant{}).
		Select("owner_id, count(*) as n").
		Group("owner_id").
		Scan(&rows).Error
	if err != nil {
		log.Error("Failed to count restaurants per owner", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch owners"})
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = row.N
	}

	summaries := make([]ownerSummary, 0, len(owners))
	for _, owner := range owners {
		summaries = append(summaries, ownerSummary{
			ID:              owner.ID,
			Name:            owner.Name,
			Email:           owner.Email,
			CreatedAt:       owner.CreatedAt,
			RestaurantCount: counts[owner.ID],
		})
	}

	return c.JSON(http.StatusOK, summaries)
}
