package middleware

import (
	"net/http"
	"strings"

	"github.com/krizhnx/internyx/pkg/jwtutil"
	"github.com/krizhnx/internyx/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and extracts the owner identity
// that scopes every gateway call
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		if claims.UserID == "" {
			log.Warn("JWT token does not contain user_id")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required in the token"})
		}

		c.Set("owner_id", claims.UserID)
		c.Set("email", claims.Email)

		return next(c)
	}
}

// OwnerIDFromContext retrieves the owner ID from the context.
// Returns "", false if it is not set.
func OwnerIDFromContext(c echo.Context) (string, bool) {
	ownerID, ok := c.Get("owner_id").(string)
	return ownerID, ok && ownerID != ""
}
