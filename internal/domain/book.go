package domain

import (
	"github.com/shopspring/decimal"

	"github.com/shopmateapp/shopmate-server/internal/errors"
)

// Book represents a title in the shop's inventory.
type Book struct {
	Audit
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ISBN      string          `json:"isbn,omitempty"`
	Publisher string          `json:"publisher,omitempty"`
	Genre     string          `json:"genre,omitempty"`
	Year      int             `json:"year,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// ValidatePrice checks that a price is usable as a book price:
// non-negative with at most two decimal places.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errors.Validation("price must not be negative")
	}
	if price.Exponent() < -2 && !price.Equal(price.Round(2)) {
		return errors.Validation("price must have at most two decimal places")
	}
	return nil
}
