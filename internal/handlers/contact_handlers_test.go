package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akingscoffee/coffee_shop/internal/models"
)

func TestCreateContactMessage(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"name":    "Grace Hopper",
		"email":   "grace@example.com",
		"subject": "Catering inquiry",
		"message": "Do you cater office events?",
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/contact", payload)
	require.NoError(t, env.CT.CreateMessage(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    models.ContactMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "new", resp.Data.Status)
}

func TestCreateContactMessageValidation(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"name":    "Grace Hopper",
		"email":   "grace@example.com",
		"subject": "",
		"message": "hello",
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/contact", payload)
	require.NoError(t, env.CT.CreateMessage(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var n int64
	require.NoError(t, env.DB.Model(&models.ContactMessage{}).Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestGetContactMessages(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"name":    "Grace Hopper",
		"email":   "grace@example.com",
		"subject": "Catering inquiry",
		"message": "Do you cater office events?",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/contact", payload)
	require.NoError(t, env.CT.CreateMessage(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/admin/contact", nil)
	require.NoError(t, env.CT.GetMessages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                    `json:"success"`
		Count   int                     `json:"count"`
		Data    []models.ContactMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
}
