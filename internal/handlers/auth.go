package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/hash"
	"github.com/akingscoffee/coffee_shop/internal/models"
	"github.com/akingscoffee/coffee_shop/internal/mykafka"
	"github.com/akingscoffee/coffee_shop/internal/service/token"
)

// AuthHandler manages staff accounts. There is no customer login; ordering
// is anonymous. Staff passwords are bcrypt-hashed and sessions are JWT
// access/refresh pairs.
type AuthHandler struct {
	DB       *gorm.DB
	Tokens   *token.TokenService
	Producer *mykafka.Producer
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || len(req.Password) < 8 {
		return respondError(c, http.StatusBadRequest, "username and a password of at least 8 characters are required")
	}

	var existing models.User
	err := h.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return respondError(c, http.StatusConflict, "user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, http.StatusInternalServerError, "Failed to register")
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to register")
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         "staff",
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to register")
	}

	return respondCreated(c, "Account created", user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	}

	access, accessExp, err := h.Tokens.SignAccessToken(user.ID, user.Role)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to log in")
	}
	refresh, refreshExp, err := h.Tokens.SignRefreshToken(user.ID, user.Role)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to log in")
	}

	c.SetCookie(CreateCookie("accessToken", access, "/", accessExp))
	c.SetCookie(CreateCookie("refreshToken", refresh, "/", refreshExp))

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie("refreshToken")
	if err != nil || cookie.Value == "" {
		return respondError(c, http.StatusUnauthorized, "missing refresh token")
	}

	access, refresh, accessExp, refreshExp, err := h.Tokens.Rotate(cookie.Value)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "invalid refresh token")
	}

	c.SetCookie(CreateCookie("accessToken", access, "/", accessExp))
	c.SetCookie(CreateCookie("refreshToken", refresh, "/", refreshExp))

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie("refreshToken"); err == nil && cookie.Value != "" {
		if err := h.Tokens.Revoke(cookie.Value); err != nil {
			return respondError(c, http.StatusInternalServerError, "Failed to log out")
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(CreateCookie("refreshToken", "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "logged out"})
}
