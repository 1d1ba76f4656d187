package shared_test

import (
	"context"
	"testing"

	"github.com/acmebank/clientms/internal/api/shared"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Run("set and get round-trip", func(t *testing.T) {
		ctx := shared.SetTraceID(context.Background())
		traceID := shared.GetTraceID(ctx)

		assert.Len(t, traceID, 32)
	})

	t.Run("missing trace id returns empty string", func(t *testing.T) {
		assert.Equal(t, "", shared.GetTraceID(context.Background()))
	})

	t.Run("successive ids differ", func(t *testing.T) {
		first := shared.GetTraceID(shared.SetTraceID(context.Background()))
		second := shared.GetTraceID(shared.SetTraceID(context.Background()))

		assert.NotEqual(t, first, second)
	})
}
