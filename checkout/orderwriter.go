package checkout

import (
	"errors"
	"fmt"

	"github.com/sparekart/sparekart-api/models"
	"gorm.io/gorm"
)

// ValidationError reports a rejected order before anything is written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// SizeUnavailableError reports an item whose size is not sold for the product.
type SizeUnavailableError struct {
	ProductName string
	Size        string
}

func (e *SizeUnavailableError) Error() string {
	return fmt.Sprintf("size %s is not available for %s", e.Size, e.ProductName)
}

// InsufficientStockError reports an item whose size has less stock than the
// requested quantity.
type InsufficientStockError struct {
	ProductName string
	Size        string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s in size %s: requested %d, available %d",
		e.ProductName, e.Size, e.Requested, e.Available)
}

// Writer persists orders. Stock is reserved per item with a conditional
// decrement before the order row is written, all inside one transaction, so a
// failed reservation leaves neither an order nor a partial decrement behind.
type Writer struct {
	DB *gorm.DB
}

// Create validates the order, reserves stock for every line item, then
// persists the order with its items. The zero-value ID on order is filled in
// on success.
func (w *Writer) Create(order *models.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	return w.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.OrderItems {
			if err := reserveStock(tx, item); err != nil {
				return err
			}
		}
		return tx.Create(order).Error
	})
}

// reserveStock decrements the size's stock only if enough remains. The guard
// lives in the UPDATE itself, so two concurrent orders for the last pieces
// cannot both pass: one of them sees zero rows affected.
func reserveStock(tx *gorm.DB, item models.OrderItem) error {
	var size models.ProductSize
	err := tx.Where("product_id = ? AND size = ?", item.ProductId, item.Size).First(&size).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &SizeUnavailableError{ProductName: item.Name, Size: item.Size}
	}
	if err != nil {
		return err
	}

	result := tx.Model(&models.ProductSize{}).
		Where("product_id = ? AND size = ? AND stock >= ?", item.ProductId, item.Size, item.Quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &InsufficientStockError{
			ProductName: item.Name,
			Size:        item.Size,
			Requested:   item.Quantity,
			Available:   size.Stock,
		}
	}
	return nil
}

func validateOrder(order *models.Order) error {
	if order.Total <= 0 {
		return &ValidationError{Reason: "order total must be greater than zero"}
	}
	if len(order.OrderItems) == 0 {
		return &ValidationError{Reason: "order must contain at least one item"}
	}
	if order.UserID == 0 {
		return &ValidationError{Reason: "order must belong to a user"}
	}
	for i, item := range order.OrderItems {
		if item.ProductId == 0 {
			return &ValidationError{Reason: fmt.Sprintf("order item %d is missing a product id", i+1)}
		}
		if item.Name == "" {
			return &ValidationError{Reason: fmt.Sprintf("order item %d is missing a product name", i+1)}
		}
		if item.Price <= 0 {
			return &ValidationError{Reason: fmt.Sprintf("order item %d has a non-positive price", i+1)}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Reason: fmt.Sprintf("order item %d has a non-positive quantity", i+1)}
		}
		if !models.IsValidSize(item.Size) {
			return &ValidationError{Reason: fmt.Sprintf("order item %d has an invalid size %q", i+1, item.Size)}
		}
	}
	return nil
}
