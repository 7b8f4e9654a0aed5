package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"splitbill/internal/domain"
)

func TestNewBillItem_Valid(t *testing.T) {
	item, err := domain.NewBillItem("  Margherita Pizza ", 12.456, 2, "food")
	assert.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", item.Name)
	assert.Equal(t, 12.46, item.Price)
	assert.Equal(t, 2, item.Quantity)
}

func TestNewBillItem_EmptyName(t *testing.T) {
	_, err := domain.NewBillItem("   ", 5.0, 1, "")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBill))
}

func TestNewBillItem_NonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -3.5} {
		_, err := domain.NewBillItem("Coffee", price, 1, "")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidBill))
	}
}

func TestNewBillItem_ZeroQuantityDefaultsToOne(t *testing.T) {
	item, err := domain.NewBillItem("Coffee", 3.5, 0, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestNewBillItem_QuantityOutOfRange(t *testing.T) {
	_, err := domain.NewBillItem("Coffee", 3.5, 1001, "")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBill))
}

func TestNewBill_RoundsMoneyFields(t *testing.T) {
	raw := []byte(`{
		"restaurant_name": "Cafe Uno",
		"items": [{"name": "Latte", "price": 4.567, "quantity": 1}],
		"subtotal": 4.567,
		"total": 4.567,
		"currency": "usd"
	}`)

	bill, err := domain.NewBill(raw)
	assert.NoError(t, err)
	assert.Equal(t, 4.57, bill.Items[0].Price)
	assert.Equal(t, 4.57, *bill.Subtotal)
	assert.Equal(t, 4.57, *bill.Total)
	assert.Equal(t, "USD", bill.Currency)
}

func TestNewBill_DefaultsCurrency(t *testing.T) {
	bill, err := domain.NewBill([]byte(`{"items": []}`))
	assert.NoError(t, err)
	assert.Equal(t, "USD", bill.Currency)
	assert.NotNil(t, bill.AdditionalInfo)
	assert.NotNil(t, bill.Items)
}

func TestNewBill_UnsupportedCurrency(t *testing.T) {
	_, err := domain.NewBill([]byte(`{"items": [], "currency": "XYZ"}`))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBill))
}

func TestNewBill_NegativeTotal(t *testing.T) {
	_, err := domain.NewBill([]byte(`{"items": [], "total": -1.0}`))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBill))
}

func TestNewBill_MalformedJSON(t *testing.T) {
	_, err := domain.NewBill([]byte(`{"items": [`))
	assert.Error(t, err)
}

func TestEmptyBill(t *testing.T) {
	bill := domain.EmptyBill(map[string]interface{}{"raw_ocr_text": "nothing"})
	assert.Empty(t, bill.Items)
	assert.Equal(t, "USD", bill.Currency)
	assert.Equal(t, "nothing", bill.AdditionalInfo["raw_ocr_text"])
}
