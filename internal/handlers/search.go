package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/akingscoffee/coffee_shop/internal/service/search"
	"github.com/akingscoffee/coffee_shop/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return respondError(c, http.StatusBadRequest, "query is required")
	}
	if h.ES == nil {
		return respondError(c, http.StatusServiceUnavailable, "search is not configured")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Page(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "search failed")
	}

	return respondData(c, http.StatusOK, echo.Map{"total": total, "products": products})
}
