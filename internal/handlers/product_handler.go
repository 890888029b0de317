package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"plasco-inventory/internal/apperr"
	"plasco-inventory/internal/cache"
	"plasco-inventory/internal/export"
	"plasco-inventory/internal/models"
	"plasco-inventory/internal/repository"
)

const productListCacheKey = "products:list"

type ProductHandler struct {
	store repository.ProductStore
	cache *cache.Cache
}

func NewProductHandler(store repository.ProductStore, c *cache.Cache) *ProductHandler {
	return &ProductHandler{store: store, cache: c}
}

type BulkDeleteProductsRequest struct {
	ProductIDs []string `json:"productIds"`
}

// List returns all products matching the optional filters, newest
// first. The unfiltered fetch is served from the bounded cache when
// possible.
func (h *ProductHandler) List(c *gin.Context) {
	filter := parseListFilter(c)

	if filterIsEmpty(filter) {
		if cached, found := h.cache.Get(productListCacheKey); found {
			c.JSON(http.StatusOK, gin.H{"products": cached})
			return
		}
	}

	products, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در دریافت محصولات")
		return
	}

	if filterIsEmpty(filter) {
		h.cache.Set(productListCacheKey, products)
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns a single product by id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در دریافت محصول")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create validates and persists a new product. A SKU already held by
// another record is rejected as a conflict.
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "درخواست نامعتبر است"})
		return
	}

	if err := product.Validate(); err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در ایجاد محصول")
		return
	}

	if err := h.checkDuplicateSKU(c, product.SKU, ""); err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در ایجاد محصول")
		return
	}

	if err := h.store.Create(c.Request.Context(), &product); err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در ایجاد محصول")
		return
	}

	h.cache.DeleteByPrefix("products:")
	c.JSON(http.StatusCreated, gin.H{
		"message": "محصول با موفقیت ایجاد شد",
		"product": product,
	})
}

// Update overwrites the mutable fields of an existing product. The
// SKU is re-checked only when it changes and collides with a
// different record.
func (h *ProductHandler) Update(c *gin.Context) {
	var in models.Product
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "درخواست نامعتبر است"})
		return
	}

	product, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در به‌روزرسانی محصول")
		return
	}

	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU != "" && in.SKU != product.SKU {
		if err := h.checkDuplicateSKU(c, in.SKU, product.ID.Hex()); err != nil {
			writeError(c, err, "محصول یافت نشد", "خطا در به‌روزرسانی محصول")
			return
		}
	}

	product.ApplyUpdate(&in)
	if err := product.Validate(); err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در به‌روزرسانی محصول")
		return
	}

	if err := h.store.Update(c.Request.Context(), product); err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در به‌روزرسانی محصول")
		return
	}

	h.cache.DeleteByPrefix("products:")
	c.JSON(http.StatusOK, gin.H{
		"message": "محصول با موفقیت به‌روزرسانی شد",
		"product": product,
	})
}

// Delete removes one product by id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در حذف محصول")
		return
	}

	h.cache.DeleteByPrefix("products:")
	c.JSON(http.StatusOK, gin.H{"message": "محصول با موفقیت حذف شد"})
}

// BulkDelete removes every product in the submitted id list and
// reports the removed count. Ids that match nothing are skipped.
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var body BulkDeleteProductsRequest
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ProductIDs) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "لیست محصولات نامعتبر است"})
		return
	}

	count, err := h.store.DeleteMany(c.Request.Context(), body.ProductIDs)
	if err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در حذف محصولات")
		return
	}

	h.cache.DeleteByPrefix("products:")
	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d محصول با موفقیت حذف شد", count),
		"deletedCount": count,
	})
}

// Export streams the filtered catalog as a downloadable workbook.
func (h *ProductHandler) Export(c *gin.Context) {
	products, err := h.store.List(c.Request.Context(), parseListFilter(c))
	if err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در خروجی گرفتن از محصولات")
		return
	}

	f, err := export.ProductsWorkbook(products)
	if err != nil {
		writeError(c, err, "محصول یافت نشد", "خطا در خروجی گرفتن از محصولات")
		return
	}

	filename := fmt.Sprintf("plasco-products-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logrus.WithError(err).Error("could not stream workbook")
	}
}

func (h *ProductHandler) checkDuplicateSKU(c *gin.Context, sku, excludeID string) error {
	if sku == "" {
		return nil
	}
	existing, err := h.store.FindBySKU(c.Request.Context(), sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID.Hex() != excludeID {
		return &apperr.ConflictError{Message: "محصولی با این کد محصول (SKU) قبلاً ثبت شده است"}
	}
	return nil
}
