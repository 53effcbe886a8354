package handler

import (
	"errors"
	"net/http"

	"foodmarket/internal/order"
	"foodmarket/pkg/jwtutil"
	"foodmarket/pkg/logger"
	"foodmarket/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	orderService *order.Service
	orderStore   *order.GormStore
)

// InitOrderHandler wires the order service and store used by the order routes
func InitOrderHandler(svc *order.Service, store *order.GormStore) {
	orderService = svc
	orderStore = store
}

// CreateOrder places an order for the authenticated customer
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		RestaurantID uint             `json:"restaurant_id"`
		Items        []order.CartLine `json:"items"`
		Notes        string           `json:"notes"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order request", zap.Error(err))
		prometheus.OrderRejectedCounter.WithLabelValues("invalid_request").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	placed, err := orderService.Place(claims.UserID, req.RestaurantID, req.Items, req.Notes)
	if err != nil {
		var unavailable *order.UnavailableItemError
		switch {
		case errors.Is(err, order.ErrEmptyCart), errors.Is(err, order.ErrInvalidLine):
			log.Warn("Rejected malformed cart", zap.Error(err))
			prometheus.OrderRejectedCounter.WithLabelValues("empty_cart").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
		case errors.Is(err, order.ErrRestaurantNotFound):
			log.Warn("Order against missing or inactive restaurant",
				zap.Uint("restaurant_id", req.RestaurantID))
			prometheus.OrderRejectedCounter.WithLabelValues("restaurant_not_found").Inc()
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case errors.As(err, &unavailable):
			log.Warn("Order references unavailable menu item",
				zap.Uint("menu_item_id", unavailable.MenuItemID))
			prometheus.OrderRejectedCounter.WithLabelValues("item_unavailable").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": unavailable.Error()})
		default:
			log.Error("Failed to create order", zap.Error(err))
			prometheus.OrderRejectedCounter.WithLabelValues("internal").Inc()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
		}
	}

	prometheus.OrderPlacedCounter.Inc()
	prometheus.OrderTotalHistogram.Observe(placed.Total)
	log.Info("Order placed",
		zap.Uint("order_id", placed.ID),
		zap.Uint("customer_id", claims.UserID),
		zap.Uint("restaurant_id", placed.RestaurantID),
		zap.Float64("total", placed.Total))

	return c.JSON(http.StatusCreated, placed)
}

// ListOrders returns the authenticated customer's orders, newest first
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	orders, err := orderStore.ListByCustomer(claims.UserID)
	if err != nil {
		log.Error("Failed to retrieve orders",
			zap.Uint("customer_id", claims.UserID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, orders)
}
