package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingItem_ReferencePrice(t *testing.T) {
	t.Parallel()

	item := TrackingItem{BaselinePrice: 100}
	assert.InDelta(t, 100, item.ReferencePrice(), 0.001)

	item.LastPrice = 90
	assert.InDelta(t, 90, item.ReferencePrice(), 0.001)
}
