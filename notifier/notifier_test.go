package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Financ3/price-drop-notifier/models"
)

func TestPublishPriceDrop_NeverBlocks(t *testing.T) {
	n := NewNotifier(nil, nil, 1)

	evt := models.PriceDropEvent{ProductURL: "https://shop.example/p/1"}
	n.PublishPriceDrop(evt)
	// Buffer is full now; a second publish must drop instead of blocking
	n.PublishPriceDrop(evt)

	assert.Len(t, n.events, 1)
}
