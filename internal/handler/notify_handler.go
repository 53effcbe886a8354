package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"foodmarket/internal/model"
	"foodmarket/internal/notify"
	"foodmarket/pkg/database"
	"foodmarket/pkg/jwtutil"
	"foodmarket/pkg/logger"
	"foodmarket/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	notifyClient *notify.Client
	notifyStates *notify.StateCodec
	notifyAppURL string
)

// InitNotifyHandler wires the LINE client, the state codec and the base URL
// used for the post-callback redirects.
func InitNotifyHandler(client *notify.Client, states *notify.StateCodec, appURL string) {
	notifyClient = client
	notifyStates = states
	notifyAppURL = appURL
}

// NotifyAuthorize starts the channel-linking flow: it redirects the
// authenticated user to the third-party authorization page with a signed
// state carrying the link subject.
func NotifyAuthorize(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	if !notifyClient.Configured() {
		log.Error("LINE Notify credentials not configured")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "LINE Notify not configured"})
	}

	subjectType := c.QueryParam("type")
	state := notify.State{SubjectType: subjectType, UserID: claims.UserID}

	switch subjectType {
	case notify.SubjectUser:
		// Channel will be bound to the user themselves
	case notify.SubjectRestaurant:
		restaurantID, err := strconv.ParseUint(c.QueryParam("restaurantId"), 10, 32)
		if err != nil || restaurantID == 0 {
			log.Error("Missing or invalid restaurantId for restaurant link")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurantId is required"})
		}
		state.RestaurantID = uint(restaurantID)
	default:
		log.Error("Invalid link subject type", zap.String("type", subjectType))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be user or restaurant"})
	}

	authURL := notifyClient.AuthCodeURL(notifyStates.Encode(state))
	log.Info("Redirecting to LINE authorization",
		zap.String("subject", subjectType),
		zap.Uint("user_id", claims.UserID))

	return c.Redirect(http.StatusFound, authURL)
}

// NotifyCallback completes the channel-linking flow. The third party
// redirects here with a code and the state we issued; any failure redirects
// to the profile page with an error flag and creates no channel row.
func NotifyCallback(c echo.Context) error {
	log := logger.FromContext(c)

	if errParam := c.QueryParam("error"); errParam != "" {
		log.Warn("LINE authorization denied", zap.String("error", errParam))
		prometheus.NotifyLinkCounter.WithLabelValues("unknown", "failed").Inc()
		return c.Redirect(http.StatusFound, notifyAppURL+"/profile?error=line_auth_failed")
	}

	code := c.QueryParam("code")
	rawState := c.QueryParam("state")
	if code == "" || rawState == "" {
		log.Warn("Callback missing code or state")
		prometheus.NotifyLinkCounter.WithLabelValues("unknown", "failed").Inc()
		return c.Redirect(http.StatusFound, notifyAppURL+"/profile?error=invalid_callback")
	}

	state, err := notifyStates.Decode(rawState)
	if err != nil {
		log.Warn("Rejected callback state", zap.Error(err))
		prometheus.NotifyLinkCounter.WithLabelValues("unknown", "failed").Inc()
		return c.Redirect(http.StatusFound, notifyAppURL+"/profile?error=invalid_state")
	}

	token, err := notifyClient.ExchangeCode(code)
	if err != nil {
		log.Error("Code exchange failed", zap.Error(err))
		prometheus.NotifyLinkCounter.WithLabelValues(state.SubjectType, "failed").Inc()
		return c.Redirect(http.StatusFound, notifyAppURL+"/profile?error=line_callback_failed")
	}

	channel := model.NotificationChannel{
		Type:     model.ChannelTypeLine,
		Token:    token.AccessToken,
		IsActive: true,
	}
	if state.SubjectType == notify.SubjectRestaurant {
		channel.RestaurantID = &state.RestaurantID
	} else {
		channel.UserID = &state.UserID
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&channel); result.Error != nil {
		log.Error("Failed to persist notification channel", zap.Error(result.Error))
		prometheus.NotifyLinkCounter.WithLabelValues(state.SubjectType, "failed").Inc()
		return c.Redirect(http.StatusFound, notifyAppURL+"/profile?error=line_callback_failed")
	}

	prometheus.NotifyLinkCounter.WithLabelValues(state.SubjectType, "linked").Inc()
	log.Info("Notification channel linked",
		zap.String("subject", state.SubjectType),
		zap.Uint("user_id", state.UserID),
		zap.Uint("restaurant_id", state.RestaurantID))

	if state.SubjectType == notify.SubjectRestaurant {
		return c.Redirect(http.StatusFound,
			fmt.Sprintf("%s/merchant/%d/notifications?success=line_connected", notifyAppURL, state.RestaurantID))
	}
	return c.Redirect(http.StatusFound, notifyAppURL+"/profile?success=line_connected")
}
