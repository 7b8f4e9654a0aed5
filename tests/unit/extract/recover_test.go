package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"splitbill/internal/extract"
)

const pizzaReply = "Here is the extracted data:\n```json\n" +
	`{"restaurant_name": "Pizza Palace", "items": [{"name": "Pepperoni", "price": 18.50, "quantity": 1}], "total": 32.75, "currency": "USD"}` +
	"\n```"

func TestRecoverBill_ValidJSONInProse(t *testing.T) {
	bill := extract.RecoverBill(pizzaReply)
	assert.NotNil(t, bill)
	assert.Equal(t, "Pizza Palace", bill.RestaurantName)
	assert.Len(t, bill.Items, 1)
	assert.NotNil(t, bill.Total)
	assert.Equal(t, 32.75, *bill.Total)
}

func TestRecoverBill_EmptyInput(t *testing.T) {
	bill := extract.RecoverBill("")
	assert.NotNil(t, bill)
	assert.Empty(t, bill.Items)
	assert.Contains(t, bill.AdditionalInfo, "raw_ocr_text")
}

func TestRecoverBill_NoJSONAtAll(t *testing.T) {
	bill := extract.RecoverBill("Sorry, I could not read the receipt.")
	assert.NotNil(t, bill)
	assert.Empty(t, bill.Items)
	assert.Equal(t, "Sorry, I could not read the receipt.", bill.AdditionalInfo["raw_ocr_text"])
}

func TestRecoverBill_TruncatedJSON(t *testing.T) {
	bill := extract.RecoverBill(`{"restaurant_name": "Cut Off", "items": [{"name":`)
	assert.NotNil(t, bill)
	assert.Empty(t, bill.Items)
	assert.Contains(t, bill.AdditionalInfo, "raw_ocr_text")
}

func TestRecoverBill_ValidJSONInvalidBill(t *testing.T) {
	bill := extract.RecoverBill(`{"items": [], "currency": "XYZ"}`)
	assert.NotNil(t, bill)
	assert.Contains(t, bill.AdditionalInfo, "error")
	assert.Contains(t, bill.AdditionalInfo, "raw_ocr_text")
}

func TestRecoverBill_NeverReturnsNil(t *testing.T) {
	inputs := []string{
		"", "   ", "{", "}", "}{", "null", "[1,2,3]",
		`{"total": "not-a-number"}`,
		"text before {\"items\": []} text after",
	}
	for _, in := range inputs {
		bill := extract.RecoverBill(in)
		assert.NotNil(t, bill, "input %q", in)
		assert.NotNil(t, bill.AdditionalInfo, "input %q", in)
	}
}
