package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, SweepDuration)
	assert.NotNil(t, SweepItemsChecked)
	assert.NotNil(t, SweepErrorsTotal)
	assert.NotNil(t, SweepSkippedTotal)
	assert.NotNil(t, FetchNoPriceTotal)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
}
