package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Toy is a toy-catalog record. Purchase and wholesale prices are
// optional; only the retail price is always present.
type Toy struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	PurchasePrice  float64            `json:"purchasePrice,omitempty" bson:"purchasePrice,omitempty" validate:"gte=0"`
	WholesalePrice float64            `json:"wholesalePrice,omitempty" bson:"wholesalePrice,omitempty" validate:"gte=0"`
	RetailPrice    float64            `json:"retailPrice" bson:"retailPrice" validate:"gte=0"`
	Brand          string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Category       string             `json:"category,omitempty" bson:"category,omitempty"`
	AgeRange       string             `json:"ageRange,omitempty" bson:"ageRange,omitempty"`
	Material       string             `json:"material,omitempty" bson:"material,omitempty"`
	StockQuantity  int                `json:"stockQuantity" bson:"stockQuantity" validate:"gte=0"`
	SKU            string             `json:"sku,omitempty" bson:"sku,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var toyMessages = map[string]string{
	"Name.required":      "نام اسباب بازی الزامی است",
	"PurchasePrice.gte":  "قیمت خرید نمی‌تواند منفی باشد",
	"WholesalePrice.gte": "قیمت عمده نمی‌تواند منفی باشد",
	"RetailPrice.gte":    "قیمت تکی نمی‌تواند منفی باشد",
	"StockQuantity.gte":  "موجودی نمی‌تواند منفی باشد",
}

func (t *Toy) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	t.Brand = strings.TrimSpace(t.Brand)
	t.SKU = strings.TrimSpace(t.SKU)
	return checkStruct(t, toyMessages)
}

// ApplyUpdate overwrites the mutable fields from an incoming record.
func (t *Toy) ApplyUpdate(in *Toy) {
	t.Name = in.Name
	t.PurchasePrice = in.PurchasePrice
	t.WholesalePrice = in.WholesalePrice
	t.RetailPrice = in.RetailPrice
	t.Brand = in.Brand
	t.Category = in.Category
	t.AgeRange = in.AgeRange
	t.Material = in.Material
	t.StockQuantity = in.StockQuantity
	if in.SKU != "" {
		t.SKU = in.SKU
	}
	t.UpdatedAt = time.Now()
}
