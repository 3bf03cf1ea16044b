package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/akingscoffee/coffee_shop/internal/logging"
	"github.com/akingscoffee/coffee_shop/internal/mykafka"
	"github.com/akingscoffee/coffee_shop/internal/service/order"
	"github.com/akingscoffee/coffee_shop/internal/util"
)

type OrderHandler struct {
	Svc      *order.Service
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req order.CreateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrValidation):
			return respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrProductNotFound):
			return respondError(c, http.StatusBadRequest, err.Error())
		default:
			l.Error("create order failed", "error", err)
			return respondError(c, http.StatusInternalServerError, "Failed to create order")
		}
	}

	l.Info("order created", "order_id", view.ID, "total", view.Total)
	publish(c, h.Producer, mykafka.TopicOrderEvents, view.ID.String(), map[string]interface{}{
		"type":     "order_created",
		"order_id": view.ID,
		"total":    view.Total,
	})

	return respondCreated(c, "Order created successfully", view)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset := parseIntDefault(c.QueryParam("offset"), 0)
	limit, offset = util.Calculate(limit, offset)

	views, err := h.Svc.List(ctx, limit, offset)
	if err != nil {
		logging.FromContext(ctx).Error("list orders failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to fetch orders")
	}

	return respondList(c, len(views), views)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Order not found")
	}

	view, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return respondError(c, http.StatusNotFound, "Order not found")
		}
		logging.FromContext(ctx).Error("get order failed", "order_id", id, "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to fetch order")
	}

	return respondData(c, http.StatusOK, view)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Order not found")
	}

	if err := h.Svc.Cancel(ctx, id); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			return respondError(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrNotCancellable):
			return respondError(c, http.StatusBadRequest, "Only pending orders can be cancelled")
		default:
			logging.FromContext(ctx).Error("cancel order failed", "order_id", id, "error", err)
			return respondError(c, http.StatusInternalServerError, "Failed to cancel order")
		}
	}

	publish(c, h.Producer, mykafka.TopicOrderEvents, id.String(), map[string]interface{}{
		"type":     "order_cancelled",
		"order_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order cancelled successfully"})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Order not found")
	}

	var req struct {
		Status             string `json:"status"`
		PreparationMinutes int    `json:"preparation_minutes"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.UpdateStatus(ctx, id, req.Status, req.PreparationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			return respondError(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrInvalidStatus):
			return respondError(c, http.StatusBadRequest, err.Error())
		default:
			logging.FromContext(ctx).Error("update order status failed", "order_id", id, "error", err)
			return respondError(c, http.StatusInternalServerError, "Failed to update order")
		}
	}

	publish(c, h.Producer, mykafka.TopicOrderEvents, id.String(), map[string]interface{}{
		"type":     "order_status_updated",
		"order_id": id,
		"status":   view.Status,
	})

	return respondData(c, http.StatusOK, view)
}
