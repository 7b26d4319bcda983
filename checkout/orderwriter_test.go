package checkout

import (
	"testing"

	"github.com/sparekart/sparekart-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.ProductSize{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, sizes map[string]int) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Description: "test product",
		Category:    "covers",
		Price:       100,
	}
	require.NoError(t, db.Create(&product).Error)
	for size, stock := range sizes {
		require.NoError(t, db.Create(&models.ProductSize{
			ProductID: int(product.ID),
			Size:      size,
			Price:     100,
			Stock:     stock,
		}).Error)
	}
	return product
}

func stockOf(t *testing.T, db *gorm.DB, productId int, size string) int {
	t.Helper()
	var row models.ProductSize
	require.NoError(t, db.Where("product_id = ? AND size = ?", productId, size).First(&row).Error)
	return row.Stock
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	return count
}

func validOrder(productId int) *models.Order {
	return &models.Order{
		UserID:        7,
		FirstName:     "Priya",
		Email:         "priya@example.com",
		State:         "Tamil Nadu",
		ItemsPrice:    450,
		ShippingPrice: 100,
		Total:         550,
		Status:        models.OrderStatusProcessing,
		PaymentStatus: models.PaymentStatusPaid,
		OrderItems: []models.OrderItem{
			{ProductId: productId, Name: "Shockproof Cover", Price: 90, Quantity: 5, Size: "M"},
		},
	}
}

func TestCreateRejectsInvalidOrders(t *testing.T) {
	db := setupTestDB(t)
	writer := &Writer{DB: db}

	cases := []struct {
		name   string
		mutate func(*models.Order)
	}{
		{"zero total", func(o *models.Order) { o.Total = 0 }},
		{"negative total", func(o *models.Order) { o.Total = -10 }},
		{"no items", func(o *models.Order) { o.OrderItems = nil }},
		{"no user", func(o *models.Order) { o.UserID = 0 }},
		{"missing product id", func(o *models.Order) { o.OrderItems[0].ProductId = 0 }},
		{"missing name", func(o *models.Order) { o.OrderItems[0].Name = "" }},
		{"zero price", func(o *models.Order) { o.OrderItems[0].Price = 0 }},
		{"zero quantity", func(o *models.Order) { o.OrderItems[0].Quantity = 0 }},
		{"negative quantity", func(o *models.Order) { o.OrderItems[0].Quantity = -2 }},
		{"invalid size", func(o *models.Order) { o.OrderItems[0].Size = "XXXL" }},
		{"missing size", func(o *models.Order) { o.OrderItems[0].Size = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := validOrder(1)
			tc.mutate(order)

			err := writer.Create(order)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.EqualValues(t, 0, orderCount(t, db), "nothing may be written on rejection")
		})
	}
}

func TestCreatePersistsOrderAndDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Shockproof Cover", map[string]int{"M": 10})
	writer := &Writer{DB: db}

	order := validOrder(int(product.ID))
	require.NoError(t, writer.Create(order))

	assert.NotZero(t, order.ID)
	assert.Equal(t, 5, stockOf(t, db, int(product.ID), "M"))

	var persisted models.Order
	require.NoError(t, db.Preload("OrderItems").First(&persisted, order.ID).Error)
	assert.Len(t, persisted.OrderItems, 1)
	assert.Equal(t, "M", persisted.OrderItems[0].Size)
	assert.Equal(t, 550.0, persisted.Total)
}

func TestCreateInsufficientStockNamesProductAndSize(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Shockproof Cover", map[string]int{"M": 3})
	writer := &Writer{DB: db}

	order := validOrder(int(product.ID))
	err := writer.Create(order)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Shockproof Cover", stockErr.ProductName)
	assert.Equal(t, "M", stockErr.Size)
	assert.Contains(t, err.Error(), "Shockproof Cover")
	assert.Contains(t, err.Error(), "M")

	// No order row survives a failed reservation.
	assert.EqualValues(t, 0, orderCount(t, db))
	assert.Equal(t, 3, stockOf(t, db, int(product.ID), "M"))
}

func TestCreateRestoresEarlierDecrementsOnFailure(t *testing.T) {
	db := setupTestDB(t)
	covers := seedProduct(t, db, "Shockproof Cover", map[string]int{"M": 10})
	straps := seedProduct(t, db, "Silicone Strap", map[string]int{"L": 1})
	writer := &Writer{DB: db}

	order := &models.Order{
		UserID:        7,
		Total:         1000,
		PaymentStatus: models.PaymentStatusPaid,
		OrderItems: []models.OrderItem{
			{ProductId: int(covers.ID), Name: "Shockproof Cover", Price: 90, Quantity: 4, Size: "M"},
			{ProductId: int(straps.ID), Name: "Silicone Strap", Price: 50, Quantity: 3, Size: "L"},
		},
	}

	err := writer.Create(order)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Silicone Strap", stockErr.ProductName)

	// The cover decrement from earlier in the same request is rolled back.
	assert.Equal(t, 10, stockOf(t, db, int(covers.ID), "M"))
	assert.Equal(t, 1, stockOf(t, db, int(straps.ID), "L"))
	assert.EqualValues(t, 0, orderCount(t, db))
}

func TestCreateUnknownSizeRow(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Shockproof Cover", map[string]int{"M": 10})
	writer := &Writer{DB: db}

	order := validOrder(int(product.ID))
	order.OrderItems[0].Size = "XS"
	err := writer.Create(order)

	var sizeErr *SizeUnavailableError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, "Shockproof Cover", sizeErr.ProductName)
	assert.Equal(t, "XS", sizeErr.Size)
	assert.EqualValues(t, 0, orderCount(t, db))
}

func TestCreateExactStockSellsOut(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Shockproof Cover", map[string]int{"M": 5})
	writer := &Writer{DB: db}

	order := validOrder(int(product.ID))
	require.NoError(t, writer.Create(order))
	assert.Equal(t, 0, stockOf(t, db, int(product.ID), "M"))

	// The next order for the same size fails: the guard lives in the UPDATE.
	second := validOrder(int(product.ID))
	err := writer.Create(second)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Available)
	assert.EqualValues(t, 1, orderCount(t, db))
}
