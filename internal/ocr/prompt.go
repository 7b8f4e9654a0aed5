package ocr

// BuildBillExtractionPrompt returns the extraction prompt for turning raw OCR
// text from a bill or receipt into a structured JSON object.
func BuildBillExtractionPrompt(ocrText string) string {
	return `Please analyze the following bill/receipt text and extract information in JSON format.

OCR Text:
` + ocrText + `

Extract the following information and return ONLY a valid JSON object:
{
    "restaurant_name": "name of the establishment or null",
    "date": "date of the bill in YYYY-MM-DD format or null",
    "time": "time of the bill in HH:MM format or null",
    "items": [
        {
            "name": "item name",
            "price": 0.00,
            "quantity": 1
        }
    ],
    "subtotal": 0.00,
    "tax": 0.00,
    "tip": 0.00,
    "total": 0.00,
    "currency": "USD or detected currency"
}

Rules:
- Extract all visible items with their prices and quantities
- Use null for any information that is not clearly visible
- Ensure all prices are numbers (not strings)
- Return ONLY the JSON object, no additional text`
}
