package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/logging"
	"github.com/akingscoffee/coffee_shop/internal/models"
	"github.com/akingscoffee/coffee_shop/internal/mykafka"
	"github.com/akingscoffee/coffee_shop/internal/util"
)

type ContactHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *ContactHandler) CreateMessage(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	switch {
	case strings.TrimSpace(req.Name) == "":
		return respondError(c, http.StatusBadRequest, "Name is required")
	case strings.TrimSpace(req.Subject) == "":
		return respondError(c, http.StatusBadRequest, "Subject is required")
	case strings.TrimSpace(req.Message) == "":
		return respondError(c, http.StatusBadRequest, "Message is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, "Valid email is required")
	}

	message := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  "new",
	}

	if err := h.DB.WithContext(c.Request().Context()).Create(&message).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("create contact message failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to send message")
	}

	publish(c, h.Producer, mykafka.TopicContactEvents, message.ID.String(), map[string]interface{}{
		"type":       "contact_message_created",
		"message_id": message.ID,
		"subject":    message.Subject,
	})

	return respondCreated(c, "Message sent successfully", message)
}

func (h *ContactHandler) GetMessages(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset := parseIntDefault(c.QueryParam("offset"), 0)
	limit, offset = util.Calculate(limit, offset)

	var messages []models.ContactMessage
	if err := h.DB.WithContext(c.Request().Context()).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("list contact messages failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to fetch contact messages")
	}

	return respondList(c, len(messages), messages)
}
