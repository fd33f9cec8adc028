package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vilkasoft/carehome-backend/internal/config"
	"github.com/vilkasoft/carehome-backend/internal/utils"
)

// AuthHandler implements the staff login.  The facility runs on a
// single configured staff credential; there is no user table and no
// refresh tokens.
type AuthHandler struct {
	Cfg config.Config
}

// NewAuthHandler returns an AuthHandler for the given configuration.
func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

// Login handles POST /v1/auth/login.  It verifies the configured
// staff credential and returns a short-lived access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.User != h.Cfg.StaffUser || !utils.VerifyPassword(h.Cfg.StaffPassHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.StaffUser, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}
