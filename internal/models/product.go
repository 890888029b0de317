package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultBrand is used when a record carries no brand ("miscellaneous").
const DefaultBrand = "متفرقه"

// Product is a generic catalog record.
type Product struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	RetailPrice    float64            `json:"retailPrice" bson:"retailPrice" validate:"gte=0"`
	WholesalePrice float64            `json:"wholesalePrice" bson:"wholesalePrice" validate:"gte=0"`
	Brand          string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Category       string             `json:"category,omitempty" bson:"category,omitempty"`
	SKU            string             `json:"sku,omitempty" bson:"sku,omitempty"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var productMessages = map[string]string{
	"Name.required":      "نام محصول الزامی است",
	"RetailPrice.gte":    "قیمت نمی‌تواند منفی باشد",
	"WholesalePrice.gte": "قیمت نمی‌تواند منفی باشد",
}

// Validate trims string fields, applies the misc-brand default and
// checks field constraints. Failures come back as a single
// ValidationError with one message per field.
func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.SKU = strings.TrimSpace(p.SKU)
	p.Description = strings.TrimSpace(p.Description)
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	return checkStruct(p, productMessages)
}

// ApplyUpdate overwrites the mutable fields from an incoming record.
// The id and creation timestamp never change.
func (p *Product) ApplyUpdate(in *Product) {
	p.Name = in.Name
	p.RetailPrice = in.RetailPrice
	p.WholesalePrice = in.WholesalePrice
	p.Brand = in.Brand
	p.Category = in.Category
	p.Description = in.Description
	if in.SKU != "" {
		p.SKU = in.SKU
	}
	p.UpdatedAt = time.Now()
}
