package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"foodmarket/internal/model"
	"foodmarket/pkg/database"
	"foodmarket/pkg/logger"
	"foodmarket/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var qrBaseURL string

// InitQRHandler sets the public base URL encoded into restaurant QR codes
func InitQRHandler(publicURL string) {
	qrBaseURL = publicURL
}

// RestaurantQR returns a PNG QR code pointing at the restaurant's public
// page, for table tents and flyers. 404 for missing or inactive restaurants.
func RestaurantQR(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid restaurant ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var restaurant model.Restaurant
	result := database.GetDB().Select("id").Where("id = ? AND is_active = ?", id, true).First(&restaurant)
	if result.Error != nil {
		log.Warn("Restaurant not found for QR", zap.Uint64("id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}

	target := fmt.Sprintf("%s/restaurants/%d", qrBaseURL, restaurant.ID)
	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		log.Error("Failed to encode QR code", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate QR code"})
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
