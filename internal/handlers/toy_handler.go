package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"plasco-inventory/internal/apperr"
	"plasco-inventory/internal/cache"
	"plasco-inventory/internal/models"
	"plasco-inventory/internal/repository"
)

const toyListCacheKey = "toys:list"

type ToyHandler struct {
	store repository.ToyStore
	cache *cache.Cache
}

func NewToyHandler(store repository.ToyStore, c *cache.Cache) *ToyHandler {
	return &ToyHandler{store: store, cache: c}
}

type BulkDeleteToysRequest struct {
	ToyIDs []string `json:"toyIds"`
}

func (h *ToyHandler) List(c *gin.Context) {
	filter := parseListFilter(c)

	if filterIsEmpty(filter) {
		if cached, found := h.cache.Get(toyListCacheKey); found {
			c.JSON(http.StatusOK, gin.H{"toys": cached})
			return
		}
	}

	toys, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در دریافت اسباب بازی‌ها")
		return
	}

	if filterIsEmpty(filter) {
		h.cache.Set(toyListCacheKey, toys)
	}

	c.JSON(http.StatusOK, gin.H{"toys": toys})
}

func (h *ToyHandler) Get(c *gin.Context) {
	toy, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در دریافت اسباب بازی")
		return
	}
	c.JSON(http.StatusOK, gin.H{"toy": toy})
}

func (h *ToyHandler) Create(c *gin.Context) {
	var toy models.Toy
	if err := c.ShouldBindJSON(&toy); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "درخواست نامعتبر است"})
		return
	}

	if err := toy.Validate(); err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در ایجاد اسباب بازی")
		return
	}

	if err := h.checkDuplicateSKU(c, toy.SKU, ""); err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در ایجاد اسباب بازی")
		return
	}

	if err := h.store.Create(c.Request.Context(), &toy); err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در ایجاد اسباب بازی")
		return
	}

	h.cache.DeleteByPrefix("toys:")
	c.JSON(http.StatusCreated, gin.H{
		"message": "اسباب بازی با موفقیت ثبت شد",
		"toy":     toy,
	})
}

func (h *ToyHandler) Update(c *gin.Context) {
	var in models.Toy
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "درخواست نامعتبر است"})
		return
	}

	toy, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در به‌روزرسانی اسباب بازی")
		return
	}

	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU != "" && in.SKU != toy.SKU {
		if err := h.checkDuplicateSKU(c, in.SKU, toy.ID.Hex()); err != nil {
			writeError(c, err, "اسباب بازی یافت نشد", "خطا در به‌روزرسانی اسباب بازی")
			return
		}
	}

	toy.ApplyUpdate(&in)
	if err := toy.Validate(); err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در به‌روزرسانی اسباب بازی")
		return
	}

	if err := h.store.Update(c.Request.Context(), toy); err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در به‌روزرسانی اسباب بازی")
		return
	}

	h.cache.DeleteByPrefix("toys:")
	c.JSON(http.StatusOK, gin.H{
		"message": "اسباب بازی با موفقیت به‌روزرسانی شد",
		"toy":     toy,
	})
}

func (h *ToyHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در حذف اسباب بازی")
		return
	}

	h.cache.DeleteByPrefix("toys:")
	c.JSON(http.StatusOK, gin.H{"message": "اسباب بازی با موفقیت حذف شد"})
}

func (h *ToyHandler) BulkDelete(c *gin.Context) {
	var body BulkDeleteToysRequest
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ToyIDs) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "آیدی اسباب بازی‌ها برای حذف مشخص نشده است"})
		return
	}

	count, err := h.store.DeleteMany(c.Request.Context(), body.ToyIDs)
	if err != nil {
		writeError(c, err, "اسباب بازی یافت نشد", "خطا در حذف گروهی اسباب بازی‌ها")
		return
	}

	h.cache.DeleteByPrefix("toys:")
	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d اسباب بازی با موفقیت حذف شدند", count),
		"deletedCount": count,
	})
}

func (h *ToyHandler) checkDuplicateSKU(c *gin.Context, sku, excludeID string) error {
	if sku == "" {
		return nil
	}
	existing, err := h.store.FindBySKU(c.Request.Context(), sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID.Hex() != excludeID {
		return &apperr.ConflictError{Message: "اسباب بازی با این کد محصول (SKU) قبلاً ثبت شده است"}
	}
	return nil
}
