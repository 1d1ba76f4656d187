package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/acmebank/clientms/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "generic not found",
			err:  store.ErrNotFound,
			want: true,
		},
		{
			name: "client not found",
			err:  store.ErrClientNotFound,
			want: true,
		},
		{
			name: "wrapped client not found",
			err:  fmt.Errorf("lookup failed: %w", store.ErrClientNotFound),
			want: true,
		},
		{
			name: "duplicate error",
			err:  store.ErrDNIExists,
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "generic duplicate",
			err:  store.ErrDuplicate,
			want: true,
		},
		{
			name: "dni exists",
			err:  store.ErrDNIExists,
			want: true,
		},
		{
			name: "email exists",
			err:  store.ErrEmailExists,
			want: true,
		},
		{
			name: "wrapped email exists",
			err:  fmt.Errorf("create failed: %w", store.ErrEmailExists),
			want: true,
		},
		{
			name: "not found error",
			err:  store.ErrClientNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		inner := errors.New("connection reset")
		err := store.NewStoreError("client", "create", "insert failed", inner)

		assert.Contains(t, err.Error(), "create operation on client failed")
		assert.Contains(t, err.Error(), "insert failed")
		assert.ErrorIs(t, err, inner)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := store.NewStoreError("client", "delete", "nothing to delete", nil)

		assert.Equal(t, "delete operation on client failed: nothing to delete", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("preserves sentinel identity through wrapping", func(t *testing.T) {
		err := store.NewStoreError("client", "get", "row scan", store.ErrClientNotFound)

		assert.True(t, store.IsNotFoundError(err))
	})
}
