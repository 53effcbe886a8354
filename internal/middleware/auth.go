package middleware

import (
	"net/http"
	"strings"

	"foodmarket/pkg/jwtutil"
	"foodmarket/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTAuthMiddleware creates a middleware that validates JWT tokens and stores
// the resolved claims in the request context under "user".
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Extract the token from the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set("user", claims)
			log.Debug("JWT token validated successfully",
				zap.Uint("user_id", claims.UserID),
				zap.String("role", claims.Role))

			return next(c)
		}
	}
}

// RequireRole creates a middleware that rejects requests whose resolved
// identity does not carry the required role. Role mismatches respond 401,
// the same as a missing identity; the API does not distinguish the two.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			claims, ok := c.Get("user").(*jwtutil.UserClaims)
			if !ok {
				log.Warn("No identity in context for role-gated route")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			if claims.Role != role {
				log.Warn("Role mismatch on gated route",
					zap.String("required", role),
					zap.String("actual", claims.Role))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			return next(c)
		}
	}
}
