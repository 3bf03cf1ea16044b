package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akingscoffee/coffee_shop/internal/logging"
	"github.com/akingscoffee/coffee_shop/internal/mykafka"
)

func respondData(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, echo.Map{"success": true, "data": data})
}

func respondCreated(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": message, "data": data})
}

func respondList(c echo.Context, count int, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count, "data": data})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"success": false, "error": message})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// publish fires an event without failing the request; a missing broker only
// costs a warning in the log.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka publish error", "topic", topic, "error", err)
	}
}
