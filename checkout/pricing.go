package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PricedItem is one cart line as it enters the pricing stage. Price is the
// per-size unit price cached on the cart item.
type PricedItem struct {
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Quantity           int     `json:"quantity"`
	Size               string  `json:"size"`
}

// Quote is the result of pricing a cart against a destination state.
type Quote struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	TotalQuantity int     `json:"totalQuantity"`
	ShippingUnits int     `json:"shippingUnits"`
	RatePerUnit   float64 `json:"ratePerUnit"`
	ShippingPrice float64 `json:"shippingPrice"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
}

// Shipping is billed per unit of up to four items. Orders shipped within
// Tamil Nadu get the local rate, everywhere else pays the flat outstation rate.
const (
	itemsPerShippingUnit = 4
	localRatePerUnit     = 50
	remoteRatePerUnit    = 80
)

var localStateSpellings = map[string]bool{
	"tamil nadu": true,
	"tamilnadu":  true,
	"tamil-nadu": true,
	"tn":         true,
}

// RatePerUnit returns the shipping rate for one shipping unit to the given
// destination state. Matching is case and surrounding-whitespace insensitive.
func RatePerUnit(state string) float64 {
	if localStateSpellings[strings.ToLower(strings.TrimSpace(state))] {
		return localRatePerUnit
	}
	return remoteRatePerUnit
}

// ShippingUnits returns ceil(totalQuantity / 4).
func ShippingUnits(totalQuantity int) int {
	if totalQuantity <= 0 {
		return 0
	}
	return (totalQuantity + itemsPerShippingUnit - 1) / itemsPerShippingUnit
}

// Price computes the full quote for a cart. An empty cart prices to zero
// across the board. Tax is carried as an explicit zero so that
// total = items + shipping + tax holds at the single write site.
func Price(items []PricedItem, state string) Quote {
	hundred := decimal.NewFromInt(100)

	subtotal := decimal.Zero
	totalQuantity := 0
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		discount := decimal.NewFromFloat(item.DiscountPercentage).Div(hundred)
		effective := price.Mul(decimal.NewFromInt(1).Sub(discount))
		subtotal = subtotal.Add(effective.Mul(decimal.NewFromInt(int64(item.Quantity))))
		totalQuantity += item.Quantity
	}
	subtotal = subtotal.Round(2)

	units := ShippingUnits(totalQuantity)
	rate := RatePerUnit(state)
	shipping := decimal.NewFromInt(int64(units)).Mul(decimal.NewFromFloat(rate))
	tax := decimal.Zero
	total := subtotal.Add(shipping).Add(tax)

	return Quote{
		ItemsPrice:    subtotal.InexactFloat64(),
		TotalQuantity: totalQuantity,
		ShippingUnits: units,
		RatePerUnit:   rate,
		ShippingPrice: shipping.InexactFloat64(),
		Tax:           tax.InexactFloat64(),
		Total:         total.InexactFloat64(),
	}
}
