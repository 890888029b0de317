// Package pricing derives wholesale and retail prices from a purchase
// price and profit percentages, the way the new-with-profit form does.
package pricing

import "errors"

// ErrIncomplete is returned when Calculate is invoked before all three
// inputs are set.
var ErrIncomplete = errors.New("قیمت خرید و درصدهای سود برای محاسبه الزامی هستند")

// Result holds the derived prices of one calculation.
type Result struct {
	WholesalePrice float64
	RetailPrice    float64
}

// Calculator tracks the three inputs and the last calculation.
// Changing any input invalidates the previous result, blocking
// submission until the user recalculates.
type Calculator struct {
	purchasePrice   float64
	wholesaleProfit float64
	retailProfit    float64

	hasPurchase  bool
	hasWholesale bool
	hasRetail    bool

	result *Result
}

func (c *Calculator) SetPurchasePrice(v float64) {
	c.purchasePrice = v
	c.hasPurchase = true
	c.result = nil
}

func (c *Calculator) SetWholesaleProfitPercentage(v float64) {
	c.wholesaleProfit = v
	c.hasWholesale = true
	c.result = nil
}

func (c *Calculator) SetRetailProfitPercentage(v float64) {
	c.retailProfit = v
	c.hasRetail = true
	c.result = nil
}

// Calculate derives both prices. It is idempotent: recalculating with
// unchanged inputs yields the same result.
func (c *Calculator) Calculate() (Result, error) {
	if !c.hasPurchase || !c.hasWholesale || !c.hasRetail {
		return Result{}, ErrIncomplete
	}

	r := Result{
		WholesalePrice: c.purchasePrice + c.purchasePrice*c.wholesaleProfit/100,
		RetailPrice:    c.purchasePrice + c.purchasePrice*c.retailProfit/100,
	}
	c.result = &r
	return r, nil
}

// Prices returns the current calculation, if one is valid.
func (c *Calculator) Prices() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// CanSubmit reports whether a successful calculation covers the
// current inputs.
func (c *Calculator) CanSubmit() bool {
	return c.result != nil
}
