package domain_test

import (
	"testing"

	"github.com/acmebank/clientms/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("valid client", func(t *testing.T) {
		client, err := domain.NewClient("Ada", "Lovelace", "12345678A", "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, client)

		assert.NotEqual(t, uuid.Nil, client.ID)
		assert.Equal(t, "Ada", client.FirstName)
		assert.Equal(t, "Lovelace", client.LastName)
		assert.Equal(t, "12345678A", client.DNI)
		assert.Equal(t, "ada@example.com", client.Email)
		assert.False(t, client.CreatedAt.IsZero())
		assert.False(t, client.UpdatedAt.IsZero())
	})

	tests := []struct {
		name      string
		firstName string
		lastName  string
		dni       string
		email     string
		wantErr   error
	}{
		{
			name:      "empty first name",
			firstName: "",
			lastName:  "Lovelace",
			dni:       "12345678A",
			email:     "ada@example.com",
			wantErr:   domain.ErrEmptyFirstName,
		},
		{
			name:      "whitespace first name",
			firstName: "   ",
			lastName:  "Lovelace",
			dni:       "12345678A",
			email:     "ada@example.com",
			wantErr:   domain.ErrEmptyFirstName,
		},
		{
			name:      "empty last name",
			firstName: "Ada",
			lastName:  "",
			dni:       "12345678A",
			email:     "ada@example.com",
			wantErr:   domain.ErrEmptyLastName,
		},
		{
			name:      "empty dni",
			firstName: "Ada",
			lastName:  "Lovelace",
			dni:       " ",
			email:     "ada@example.com",
			wantErr:   domain.ErrEmptyDNI,
		},
		{
			name:      "empty email",
			firstName: "Ada",
			lastName:  "Lovelace",
			dni:       "12345678A",
			email:     "",
			wantErr:   domain.ErrEmptyEmail,
		},
		{
			name:      "email without at sign",
			firstName: "Ada",
			lastName:  "Lovelace",
			dni:       "12345678A",
			email:     "ada.example.com",
			wantErr:   domain.ErrMalformedEmail,
		},
		{
			name:      "email without domain dot",
			firstName: "Ada",
			lastName:  "Lovelace",
			dni:       "12345678A",
			email:     "ada@example",
			wantErr:   domain.ErrMalformedEmail,
		},
		{
			name:      "email ending in dot",
			firstName: "Ada",
			lastName:  "Lovelace",
			dni:       "12345678A",
			email:     "ada@example.",
			wantErr:   domain.ErrMalformedEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := domain.NewClient(tt.firstName, tt.lastName, tt.dni, tt.email)
			assert.Nil(t, client)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var validationErr *domain.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestClientValidate_EmptyID(t *testing.T) {
	client := &domain.Client{
		FirstName: "Ada",
		LastName:  "Lovelace",
		DNI:       "12345678A",
		Email:     "ada@example.com",
	}

	err := client.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestClientEmailEquals(t *testing.T) {
	client := &domain.Client{Email: "Ada@Example.com"}

	assert.True(t, client.EmailEquals("ada@example.com"))
	assert.True(t, client.EmailEquals("ADA@EXAMPLE.COM"))
	assert.False(t, client.EmailEquals("other@example.com"))
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := domain.NewValidationError("firstName", "cannot be blank", domain.ErrValidation)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "firstName")
	assert.Contains(t, err.Error(), "cannot be blank")
}
