package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Financ3/price-drop-notifier/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    float64
		currency string
		want     string
	}{
		{5, "USD", "$5.00"},
		{1234.5, "USD", "$1,234.50"},
		{999.99, "GBP", "£999.99"},
		{1234567.89, "EUR", "€1,234,567.89"},
		{12.5, "XYZ", "$12.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price, tt.currency))
	}
}

func TestBuildPriceDropEmail(t *testing.T) {
	evt := models.PriceDropEvent{
		ProductURL:  "https://shop.example/p/1",
		ProductName: "Cool Gadget",
		OldPrice:    100,
		NewPrice:    75,
		Currency:    "USD",
	}

	msg := BuildPriceDropEmail(evt, "https://api.example.com/unsubscribe?token=abc")
	require.NotNil(t, msg)

	assert.Equal(t, "Price Drop! Cool Gadget is now $75.00 (was $100.00)", msg.Subject)
	assert.Contains(t, msg.HTML, "$100.00")
	assert.Contains(t, msg.HTML, "$75.00")
	assert.Contains(t, msg.HTML, "Save $25.00 (25% off)")
	assert.Contains(t, msg.HTML, "https://api.example.com/unsubscribe?token=abc")
	assert.Contains(t, msg.HTML, "https://shop.example/p/1")
	assert.Contains(t, msg.Text, "Was: $100.00")
	assert.Contains(t, msg.Text, "Now: $75.00")
}

func TestBuildPriceDropEmail_EscapesProductName(t *testing.T) {
	evt := models.PriceDropEvent{
		ProductName: `Gadget <script>alert("x")</script>`,
		OldPrice:    20,
		NewPrice:    10,
		Currency:    "USD",
	}

	msg := BuildPriceDropEmail(evt, "https://api.example.com/u?token=t")
	assert.NotContains(t, msg.HTML, "<script>alert")
}

func TestBuildWelcomeEmail_WithPrice(t *testing.T) {
	price := 49.0
	msg := BuildWelcomeEmail("Cool Gadget", "https://shop.example/p/1",
		"https://api.example.com/u?token=t", &price, "USD")

	assert.Equal(t, "Tracking Cool Gadget — Currently $49.00", msg.Subject)
	assert.Contains(t, msg.HTML, "$49.00")
	assert.Contains(t, msg.Text, "Current price: $49.00")
}

func TestBuildWelcomeEmail_WithoutPrice(t *testing.T) {
	msg := BuildWelcomeEmail("Cool Gadget", "https://shop.example/p/1",
		"https://api.example.com/u?token=t", nil, "USD")

	assert.Contains(t, msg.HTML, "next scheduled run")
	assert.Contains(t, msg.Text, "next scheduled run")
	assert.NotContains(t, msg.Subject, "$")
}

func TestBuildUnsubscribePage(t *testing.T) {
	page := BuildUnsubscribePage("Cool Gadget")
	assert.Contains(t, page, "Cool Gadget")
	assert.Contains(t, page, "unsubscribed")

	// Works without a known product name too
	assert.Contains(t, BuildUnsubscribePage(""), "unsubscribed")
}

func TestBuildAlreadyUnsubscribedPage(t *testing.T) {
	page := BuildAlreadyUnsubscribedPage()
	assert.Contains(t, page, "already been used or is invalid")
}
