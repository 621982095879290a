package handler

import (
	"github.com/labstack/echo/v4"

	"bantuin/internal/infrastructure/firebase"
	"bantuin/pkg/errors"
	"bantuin/pkg/response"
)

// DevTokenHandler mints ID tokens for local testing. Only routed in
// non-production environments.
type DevTokenHandler struct {
	authClient *firebase.AuthClient
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(authClient *firebase.AuthClient) {
	devTokenHandler = &DevTokenHandler{authClient: authClient}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.authClient.GenerateToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]string{
		"token": token,
	})
}
