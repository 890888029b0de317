package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// ListFilter is a sparse set of optional predicates. Zero-valued
// fields impose no constraint; provided predicates are ANDed.
type ListFilter struct {
	Name     string
	Brand    string
	SKU      string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
}

// Query translates the filter into a MongoDB predicate. Substring
// matches are case-insensitive; the price range is inclusive on the
// retail price.
func (f ListFilter) Query() bson.M {
	filter := bson.M{}

	if f.Name != "" {
		filter["name"] = containsPattern(f.Name)
	}
	if f.Brand != "" {
		filter["brand"] = containsPattern(f.Brand)
	}
	if f.SKU != "" {
		filter["sku"] = containsPattern(f.SKU)
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["retailPrice"] = price
	}

	if f.InStock {
		filter["stockQuantity"] = bson.M{"$gt": 0}
	}

	return filter
}

func containsPattern(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
}
