package handlers

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/logging"
	"github.com/akingscoffee/coffee_shop/internal/models"
	"github.com/akingscoffee/coffee_shop/internal/mykafka"
	"github.com/akingscoffee/coffee_shop/internal/util"
)

type ReservationHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type reservationRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Notes  string `json:"notes"`
}

func (r *reservationRequest) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Name is required"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "Valid email is required"
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return "Valid date is required"
	}
	if strings.TrimSpace(r.Time) == "" {
		return "Time is required"
	}
	if r.Guests < 1 || r.Guests > 20 {
		return "Guests must be between 1 and 20"
	}
	return ""
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	reservation := models.Reservation{
		Name:   strings.TrimSpace(req.Name),
		Email:  req.Email,
		Phone:  strings.TrimSpace(req.Phone),
		Date:   req.Date,
		Time:   strings.TrimSpace(req.Time),
		Guests: req.Guests,
		Notes:  strings.TrimSpace(req.Notes),
		Status: "confirmed",
	}

	if err := h.DB.WithContext(c.Request().Context()).Create(&reservation).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("create reservation failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to create reservation")
	}

	publish(c, h.Producer, mykafka.TopicReservationEvents, reservation.ID.String(), map[string]interface{}{
		"type":           "reservation_created",
		"reservation_id": reservation.ID,
		"date":           reservation.Date,
		"guests":         reservation.Guests,
	})

	return respondCreated(c, "Reservation created successfully", reservation)
}

func (h *ReservationHandler) GetReservations(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset := parseIntDefault(c.QueryParam("offset"), 0)
	limit, offset = util.Calculate(limit, offset)

	var reservations []models.Reservation
	if err := h.DB.WithContext(c.Request().Context()).
		Order("date DESC, time DESC").
		Limit(limit).
		Offset(offset).
		Find(&reservations).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("list reservations failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to fetch reservations")
	}

	return respondList(c, len(reservations), reservations)
}
