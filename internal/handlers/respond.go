package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"plasco-inventory/internal/apperr"
	"plasco-inventory/internal/repository"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// writeError maps an internal failure onto the response taxonomy.
// Validation and conflict errors surface their own message with 400,
// missing records 404; anything else is logged in full and returned
// as the generic message with 500.
func writeError(c *gin.Context, err error, notFoundMsg, genericMsg string) {
	switch {
	case apperr.IsValidation(err), apperr.IsConflict(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundMsg})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: genericMsg})
	}
}

// parseListFilter reads the optional filter query parameters shared by
// the list and export endpoints.
func parseListFilter(c *gin.Context) repository.ListFilter {
	f := repository.ListFilter{
		Name:  c.Query("name"),
		Brand: c.Query("brand"),
		SKU:   c.Query("sku"),
	}

	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	if _, ok := c.GetQuery("inStock"); ok {
		f.InStock = true
	}

	return f
}

func filterIsEmpty(f repository.ListFilter) bool {
	return f.Name == "" && f.Brand == "" && f.SKU == "" &&
		f.MinPrice == nil && f.MaxPrice == nil && !f.InStock
}
