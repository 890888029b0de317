package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"plasco-inventory/internal/apperr"
	"plasco-inventory/internal/cache"
	"plasco-inventory/internal/models"
	"plasco-inventory/internal/repository"
)

// stubProductStore keeps products in memory, in insertion order
// reversed on List to mimic the newest-first sort.
type stubProductStore struct {
	items      []*models.Product
	lastFilter repository.ListFilter
}

func (s *stubProductStore) List(_ context.Context, f repository.ListFilter) ([]models.Product, error) {
	s.lastFilter = f
	out := make([]models.Product, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, *s.items[i])
	}
	return out, nil
}

func (s *stubProductStore) Get(_ context.Context, id string) (*models.Product, error) {
	for _, p := range s.items {
		if p.ID.Hex() == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *stubProductStore) FindBySKU(_ context.Context, sku string) (*models.Product, error) {
	if sku == "" {
		return nil, nil
	}
	for _, p := range s.items {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubProductStore) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.items = append(s.items, &cp)
	return nil
}

func (s *stubProductStore) Update(_ context.Context, p *models.Product) error {
	for i, cur := range s.items {
		if cur.ID == p.ID {
			cp := *p
			s.items[i] = &cp
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (s *stubProductStore) Delete(_ context.Context, id string) error {
	for i, p := range s.items {
		if p.ID.Hex() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (s *stubProductStore) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var count int64
	for _, id := range ids {
		if err := s.Delete(context.Background(), id); err == nil {
			count++
		}
	}
	return count, nil
}

func newProductRouter(store repository.ProductStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductHandler(store, cache.New(time.Minute, 8))

	r.GET("/products", h.List)
	r.POST("/products", h.Create)
	r.GET("/products/export", h.Export)
	r.DELETE("/products/bulk-delete", h.BulkDelete)
	r.GET("/products/:id", h.Get)
	r.PUT("/products/:id", h.Update)
	r.DELETE("/products/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type productResponse struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
}

func TestCreateProduct(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	w := doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name":           "توپ پلاستیکی",
		"retailPrice":    15000,
		"wholesalePrice": 12000,
		"brand":          "لگو",
		"sku":            "PL-100",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var resp productResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Product.Name != "توپ پلاستیکی" || resp.Product.RetailPrice != 15000 ||
		resp.Product.WholesalePrice != 12000 || resp.Product.SKU != "PL-100" {
		t.Errorf("persisted fields do not equal input: %+v", resp.Product)
	}
	if len(store.items) != 1 {
		t.Fatalf("store has %d items, want 1", len(store.items))
	}
}

func TestCreateProductAppliesDefaultBrand(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	w := doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name":           "لیوان",
		"retailPrice":    5000,
		"wholesalePrice": 4000,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if store.items[0].Brand != models.DefaultBrand {
		t.Errorf("brand = %q, want default %q", store.items[0].Brand, models.DefaultBrand)
	}
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"retailPrice": 1000, "wholesalePrice": 800}},
		{"blank name", gin.H{"name": "   ", "retailPrice": 1000, "wholesalePrice": 800}},
		{"negative retail price", gin.H{"name": "توپ", "retailPrice": -1, "wholesalePrice": 800}},
		{"negative wholesale price", gin.H{"name": "توپ", "retailPrice": 1000, "wholesalePrice": -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubProductStore{}
			r := newProductRouter(store)

			w := doJSON(t, r, http.MethodPost, "/products", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
			if len(store.items) != 0 {
				t.Fatal("record was persisted despite validation failure")
			}
		})
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	first := doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name": "توپ", "retailPrice": 1000, "wholesalePrice": 800, "sku": "DUP-1",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", first.Code)
	}

	second := doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name": "لیوان", "retailPrice": 2000, "wholesalePrice": 1500, "sku": "DUP-1",
	})
	if second.Code != http.StatusBadRequest {
		t.Fatalf("duplicate SKU status = %d, want 400", second.Code)
	}
	if !strings.Contains(second.Body.String(), "SKU") {
		t.Errorf("message does not mention the SKU conflict: %s", second.Body.String())
	}
	if len(store.items) != 1 {
		t.Fatalf("store has %d items, want 1", len(store.items))
	}
}

func TestMissingIDsReturn404(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)
	id := primitive.NewObjectID().Hex()

	if w := doJSON(t, r, http.MethodGet, "/products/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("GET status = %d, want 404", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, "/products/"+id, gin.H{
		"name": "x", "retailPrice": 1, "wholesalePrice": 1,
	}); w.Code != http.StatusNotFound {
		t.Errorf("PUT status = %d, want 404", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/products/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("DELETE status = %d, want 404", w.Code)
	}
	if len(store.items) != 0 {
		t.Error("store changed by requests against a missing id")
	}
}

func TestUpdateThenRead(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	created := doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name": "توپ", "retailPrice": 1000, "wholesalePrice": 800, "sku": "UP-1",
	})
	var createResp productResponse
	if err := json.Unmarshal(created.Body.Bytes(), &createResp); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	id := createResp.Product.ID.Hex()
	prevUpdated := createResp.Product.UpdatedAt

	w := doJSON(t, r, http.MethodPut, "/products/"+id, gin.H{
		"name": "توپ بزرگ", "retailPrice": 1200, "wholesalePrice": 900, "brand": "ورزشی",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d (body %s)", w.Code, w.Body.String())
	}

	read := doJSON(t, r, http.MethodGet, "/products/"+id, nil)
	var readResp productResponse
	if err := json.Unmarshal(read.Body.Bytes(), &readResp); err != nil {
		t.Fatalf("decode read: %v", err)
	}

	p := readResp.Product
	if p.ID.Hex() != id {
		t.Errorf("id changed: %s", p.ID.Hex())
	}
	if p.Name != "توپ بزرگ" || p.RetailPrice != 1200 || p.WholesalePrice != 900 || p.Brand != "ورزشی" {
		t.Errorf("updated fields not reflected: %+v", p)
	}
	if p.SKU != "UP-1" {
		t.Errorf("omitted SKU was overwritten: %q", p.SKU)
	}
	if p.UpdatedAt.Before(prevUpdated) {
		t.Errorf("updatedAt %v earlier than previous %v", p.UpdatedAt, prevUpdated)
	}
}

func TestBulkDelete(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/products", gin.H{
			"name": fmt.Sprintf("محصول %d", i), "retailPrice": 1000, "wholesalePrice": 800,
		})
		var resp productResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode create: %v", err)
		}
		ids = append(ids, resp.Product.ID.Hex())
	}

	w := doJSON(t, r, http.MethodDelete, "/products/bulk-delete", gin.H{"productIds": ids})
	if w.Code != http.StatusOK {
		t.Fatalf("bulk delete status = %d (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DeletedCount != 3 {
		t.Errorf("deletedCount = %d, want 3", resp.DeletedCount)
	}

	list := doJSON(t, r, http.MethodGet, "/products", nil)
	var listResp struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Products) != 0 {
		t.Errorf("list still contains %d products after bulk delete", len(listResp.Products))
	}
}

func TestBulkDeleteSkipsUnknownIDs(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	created := doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name": "توپ", "retailPrice": 1000, "wholesalePrice": 800,
	})
	var resp productResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, "/products/bulk-delete", gin.H{
		"productIds": []string{resp.Product.ID.Hex(), primitive.NewObjectID().Hex()},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.DeletedCount != 1 {
		t.Errorf("deletedCount = %d, want 1", out.DeletedCount)
	}
}

func TestBulkDeleteRejectsEmptyList(t *testing.T) {
	r := newProductRouter(&stubProductStore{})

	for _, body := range []interface{}{gin.H{"productIds": []string{}}, gin.H{}, "not json"} {
		w := doJSON(t, r, http.MethodDelete, "/products/bulk-delete", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, w.Code)
		}
	}
}

func TestListPassesFiltersToStore(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	w := doJSON(t, r, http.MethodGet, "/products?name=%D8%AA%D9%88%D9%BE&brand=lego&sku=PL&minPrice=100&maxPrice=900", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	f := store.lastFilter
	if f.Name != "توپ" || f.Brand != "lego" || f.SKU != "PL" {
		t.Errorf("substring filters not passed: %+v", f)
	}
	if f.MinPrice == nil || *f.MinPrice != 100 || f.MaxPrice == nil || *f.MaxPrice != 900 {
		t.Errorf("price bounds not passed: %+v", f)
	}
}

func TestExportStreamsWorkbook(t *testing.T) {
	store := &stubProductStore{}
	r := newProductRouter(store)

	doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name": "توپ", "retailPrice": 1000, "wholesalePrice": 800,
	})

	w := doJSON(t, r, http.MethodGet, "/products/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}
