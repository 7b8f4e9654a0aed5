package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

const (
	maxItemNameLen   = 200
	maxCategoryLen   = 100
	maxRestaurantLen = 200
	maxItemsPerBill  = 100
	maxItemQuantity  = 1000
	defaultCurrency  = "USD"
)

// SupportedCurrencies is the fixed allow-list of ISO 4217 codes a bill may carry.
var SupportedCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CAD": true,
	"AUD": true, "CHF": true, "CNY": true, "SEK": true, "NZD": true,
}

// BillItem is a single line item on a bill.
type BillItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

// Bill is the structured record extracted from a bill or receipt image.
// All monetary fields are optional; nil means the value was not visible on
// the bill. AdditionalInfo carries raw OCR text and extraction diagnostics
// when structured extraction degrades.
type Bill struct {
	RestaurantName string                 `json:"restaurant_name,omitempty"`
	Date           string                 `json:"date,omitempty"`
	Time           string                 `json:"time,omitempty"`
	Items          []BillItem             `json:"items"`
	Subtotal       *float64               `json:"subtotal,omitempty"`
	Tax            *float64               `json:"tax,omitempty"`
	Tip            *float64               `json:"tip,omitempty"`
	Total          *float64               `json:"total,omitempty"`
	Currency       string                 `json:"currency"`
	AdditionalInfo map[string]interface{} `json:"additional_info,omitempty"`
}

// NewBillItem validates and normalizes a line item.
func NewBillItem(name string, price float64, quantity int, category string) (*BillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is empty", ErrInvalidBill)
	}
	if len(name) > maxItemNameLen {
		return nil, fmt.Errorf("%w: item name exceeds %d characters", ErrInvalidBill, maxItemNameLen)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: item price must be positive, got %v", ErrInvalidBill, price)
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return nil, fmt.Errorf("%w: item quantity out of range: %d", ErrInvalidBill, quantity)
	}
	category = strings.TrimSpace(category)
	if len(category) > maxCategoryLen {
		return nil, fmt.Errorf("%w: item category exceeds %d characters", ErrInvalidBill, maxCategoryLen)
	}
	return &BillItem{
		Name:     name,
		Price:    roundMoney(price),
		Quantity: quantity,
		Category: category,
	}, nil
}

// NewBill decodes a JSON document into a validated, normalized Bill.
// Unknown keys are ignored; invariant violations fail construction.
func NewBill(raw []byte) (*Bill, error) {
	var b Bill
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decoding bill: %w", err)
	}
	if err := b.normalize(); err != nil {
		return nil, err
	}
	return &b, nil
}

// EmptyBill returns a minimal valid bill carrying only diagnostic info.
// Used by extraction recovery when structured extraction fails.
func EmptyBill(info map[string]interface{}) *Bill {
	return &Bill{
		Items:          []BillItem{},
		Currency:       defaultCurrency,
		AdditionalInfo: info,
	}
}

func (b *Bill) normalize() error {
	b.RestaurantName = strings.TrimSpace(b.RestaurantName)
	if len(b.RestaurantName) > maxRestaurantLen {
		return fmt.Errorf("%w: restaurant name exceeds %d characters", ErrInvalidBill, maxRestaurantLen)
	}
	// Date and time are free-form; accept as-is after trimming.
	b.Date = strings.TrimSpace(b.Date)
	b.Time = strings.TrimSpace(b.Time)

	if len(b.Items) > maxItemsPerBill {
		return fmt.Errorf("%w: too many items: %d", ErrInvalidBill, len(b.Items))
	}
	items := make([]BillItem, 0, len(b.Items))
	for _, it := range b.Items {
		normalized, err := NewBillItem(it.Name, it.Price, it.Quantity, it.Category)
		if err != nil {
			return err
		}
		items = append(items, *normalized)
	}
	b.Items = items

	for name, amount := range map[string]**float64{
		"subtotal": &b.Subtotal,
		"tax":      &b.Tax,
		"tip":      &b.Tip,
		"total":    &b.Total,
	} {
		if *amount == nil {
			continue
		}
		v := **amount
		if v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidBill, name, v)
		}
		rounded := roundMoney(v)
		*amount = &rounded
	}

	if b.Currency == "" {
		b.Currency = defaultCurrency
	}
	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	if !SupportedCurrencies[b.Currency] {
		return fmt.Errorf("%w: unsupported currency %q", ErrInvalidBill, b.Currency)
	}

	if b.AdditionalInfo == nil {
		b.AdditionalInfo = map[string]interface{}{}
	}
	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
