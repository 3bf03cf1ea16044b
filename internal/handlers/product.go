package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/akingscoffee/coffee_shop/internal/es"
	"github.com/akingscoffee/coffee_shop/internal/logging"
	"github.com/akingscoffee/coffee_shop/internal/models"
	"github.com/akingscoffee/coffee_shop/internal/mykafka"
	"github.com/akingscoffee/coffee_shop/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Available   *bool           `json:"available"`
}

func (r *productRequest) validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Price.IsNegative() || r.Price.IsZero() {
		return errors.New("price must be positive")
	}
	if r.Category == "" {
		return errors.New("category is required")
	}
	return nil
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := es.IndexProduct(ctx, h.ES, p); err != nil {
		logging.FromContext(c.Request().Context()).Warn("es index error", "product_id", p.ID, "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset := parseIntDefault(c.QueryParam("offset"), 0)
	limit, offset = util.Calculate(limit, offset)

	q := h.DB.WithContext(c.Request().Context()).Model(&models.Product{})
	if category := c.QueryParam("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	if err := q.Order("category, name").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("list products failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to fetch products")
	}

	return respondList(c, len(products), products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Product not found")
	}

	var product models.Product
	if err := h.DB.WithContext(c.Request().Context()).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "Product not found")
		}
		logging.FromContext(c.Request().Context()).Error("get product failed", "product_id", id, "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to fetch product")
	}

	return respondData(c, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   true,
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := h.DB.WithContext(c.Request().Context()).Create(&product).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("create product failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to create product")
	}

	h.index(c, &product)
	publish(c, h.Producer, mykafka.TopicProductEvents, product.ID.String(), map[string]interface{}{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return respondCreated(c, "Product created successfully", product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Product not found")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	var product models.Product
	if err := h.DB.WithContext(c.Request().Context()).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "Product not found")
		}
		return respondError(c, http.StatusInternalServerError, "Failed to fetch product")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price.Round(2)
	product.Category = req.Category
	product.ImageURL = req.ImageURL
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := h.DB.WithContext(c.Request().Context()).Save(&product).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("update product failed", "product_id", id, "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to update product")
	}

	h.index(c, &product)
	publish(c, h.Producer, mykafka.TopicProductEvents, product.ID.String(), map[string]interface{}{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return respondData(c, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Product not found")
	}

	res := h.DB.WithContext(c.Request().Context()).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		// The product FK is RESTRICT: deleting a product referenced by
		// existing order items is refused by the database.
		return respondError(c, http.StatusConflict, "Product is referenced by existing orders")
	}
	if res.RowsAffected == 0 {
		return respondError(c, http.StatusNotFound, "Product not found")
	}

	if h.ES != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		if err := es.DeleteProduct(ctx, h.ES, id.String()); err != nil {
			logging.FromContext(c.Request().Context()).Warn("es delete error", "product_id", id, "error", err)
		}
		cancel()
	}

	publish(c, h.Producer, mykafka.TopicProductEvents, id.String(), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
