package middleware

import (
	"net/http"

	"bantuin/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// AdminMiddleware gates the moderation routes. The role check hits the user
// store on every request so a revoked admin loses access immediately, not
// when their token expires.
type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Sign in to moderate tasks")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up the moderating account")
		}

		if user.Role != "admin" || user.Status == "suspended" {
			return echo.NewHTTPError(http.StatusForbidden, "Task moderation requires an active administrator account")
		}

		return next(c)
	}
}
