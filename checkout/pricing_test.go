package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingUnits(t *testing.T) {
	cases := []struct {
		quantity int
		want     int
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 1},
		{5, 2},
		{8, 2},
		{9, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShippingUnits(tc.quantity), "quantity %d", tc.quantity)
	}
}

func TestRatePerUnit(t *testing.T) {
	localSpellings := []string{
		"Tamil Nadu",
		"tamil nadu",
		"TAMIL NADU",
		"  Tamil Nadu  ",
		"TamilNadu",
		"tamil-nadu",
		"TN",
	}
	for _, state := range localSpellings {
		assert.Equal(t, float64(50), RatePerUnit(state), "state %q", state)
	}

	remoteStates := []string{"Karnataka", "Kerala", "Maharashtra", "Delhi"}
	for _, state := range remoteStates {
		assert.Equal(t, float64(80), RatePerUnit(state), "state %q", state)
	}
}

func TestPriceLocalDestination(t *testing.T) {
	items := []PricedItem{
		{Price: 100, DiscountPercentage: 10, Quantity: 5, Size: "M"},
	}

	quote := Price(items, "Tamil Nadu")

	assert.Equal(t, 450.0, quote.ItemsPrice)
	assert.Equal(t, 5, quote.TotalQuantity)
	assert.Equal(t, 2, quote.ShippingUnits)
	assert.Equal(t, 50.0, quote.RatePerUnit)
	assert.Equal(t, 100.0, quote.ShippingPrice)
	assert.Equal(t, 0.0, quote.Tax)
	assert.Equal(t, 550.0, quote.Total)
}

func TestPriceRemoteDestination(t *testing.T) {
	items := []PricedItem{
		{Price: 100, DiscountPercentage: 10, Quantity: 5, Size: "M"},
	}

	quote := Price(items, "Karnataka")

	assert.Equal(t, 160.0, quote.ShippingPrice)
	assert.Equal(t, 610.0, quote.Total)
}

func TestPriceZeroDiscountReducesToPlainSum(t *testing.T) {
	items := []PricedItem{
		{Price: 120, Quantity: 2, Size: "S"},
		{Price: 80, Quantity: 1, Size: "L"},
	}

	quote := Price(items, "Kerala")

	assert.Equal(t, 320.0, quote.ItemsPrice)
	assert.Equal(t, 3, quote.TotalQuantity)
	assert.Equal(t, 1, quote.ShippingUnits)
	assert.Equal(t, 400.0, quote.Total)
}

func TestPriceEmptyCart(t *testing.T) {
	quote := Price(nil, "Tamil Nadu")

	assert.Equal(t, 0.0, quote.ItemsPrice)
	assert.Equal(t, 0, quote.TotalQuantity)
	assert.Equal(t, 0, quote.ShippingUnits)
	assert.Equal(t, 0.0, quote.ShippingPrice)
	assert.Equal(t, 0.0, quote.Total)
}

func TestPriceRoundsToTwoDecimals(t *testing.T) {
	items := []PricedItem{
		{Price: 99.99, DiscountPercentage: 33.33, Quantity: 3, Size: "XL"},
	}

	quote := Price(items, "Goa")

	// 99.99 * 0.6667 * 3 = 199.99 (2 dp)
	assert.InDelta(t, 199.99, quote.ItemsPrice, 0.001)
	assert.InDelta(t, quote.ItemsPrice+quote.ShippingPrice+quote.Tax, quote.Total, 1e-9)
}

func TestPriceMixedItems(t *testing.T) {
	items := []PricedItem{
		{Price: 250, DiscountPercentage: 20, Quantity: 2, Size: "M"},
		{Price: 150, Quantity: 3, Size: "S"},
	}

	quote := Price(items, "tamilnadu")

	// 250*0.8*2 + 150*3 = 400 + 450
	assert.Equal(t, 850.0, quote.ItemsPrice)
	assert.Equal(t, 5, quote.TotalQuantity)
	assert.Equal(t, 2, quote.ShippingUnits)
	assert.Equal(t, 100.0, quote.ShippingPrice)
	assert.Equal(t, 950.0, quote.Total)
}
