package token

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/models"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

func (t *TokenService) SignAccessToken(userID uint, role string) (string, time.Time, error) {
	exp := time.Now().Add(accessTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.JWTSecret)
	return signed, exp, err
}

func (t *TokenService) SignRefreshToken(userID uint, role string) (string, time.Time, error) {
	exp := time.Now().Add(refreshTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"typ":  "refresh",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	record := models.RefreshToken{
		Token:     signed,
		UserID:    userID,
		ExpiresAt: exp,
	}
	if err := t.DB.Create(&record).Error; err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (t *TokenService) parse(raw string, secret []byte) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Rotate validates the refresh token against the store, revokes it and issues
// a fresh access/refresh pair.
func (t *TokenService) Rotate(raw string) (string, string, time.Time, time.Time, error) {
	claims, err := t.parse(raw, t.RefreshSecret)
	if err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", "", time.Time{}, time.Time{}, ErrInvalidToken
	}

	var stored models.RefreshToken
	if err := t.DB.Where("token = ? AND revoked = ?", raw, false).First(&stored).Error; err != nil {
		return "", "", time.Time{}, time.Time{}, ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return "", "", time.Time{}, time.Time{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(float64)
	role, _ := claims["role"].(string)
	userID := uint(sub)

	if err := t.Revoke(raw); err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}

	access, accessExp, err := t.SignAccessToken(userID, role)
	if err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}
	refresh, refreshExp, err := t.SignRefreshToken(userID, role)
	if err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}
	return access, refresh, accessExp, refreshExp, nil
}

func (t *TokenService) Revoke(raw string) error {
	return t.DB.Model(&models.RefreshToken{}).
		Where("token = ?", raw).
		Update("revoked", true).Error
}

func accessFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireStaff guards the admin route group. It accepts the access token from
// the auth cookie or an Authorization header and exposes user_id and role on
// the echo context.
func (t *TokenService) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := accessFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := t.parse(raw, t.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		role, _ := claims["role"].(string)
		if role != "staff" && role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "staff access required")
		}

		if sub, ok := claims["sub"].(float64); ok {
			c.Set("user_id", uint(sub))
		}
		c.Set("role", role)
		return next(c)
	}
}
