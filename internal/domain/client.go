package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for the Client entity.
var (
	ErrEmptyClientID  = NewValidationError("id", "cannot be empty", ErrInvalidID)
	ErrEmptyFirstName = NewValidationError("firstName", "cannot be blank", ErrValidation)
	ErrEmptyLastName  = NewValidationError("lastName", "cannot be blank", ErrValidation)
	ErrEmptyDNI       = NewValidationError("dni", "cannot be blank", ErrValidation)
	ErrEmptyEmail     = NewValidationError("email", "cannot be blank", ErrValidation)
	ErrMalformedEmail = NewValidationError("email", "must be a valid email address", ErrInvalidEmail)
)

// Client represents a person registered with the bank.
// DNI and email are unique business keys alongside the store-assigned ID.
type Client struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	DNI       string    `json:"dni"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewClient creates a new Client with the given identity fields.
// It generates a new UUID for the client ID and sets the creation/update
// timestamps. Returns a validation error if any field is invalid.
func NewClient(firstName, lastName, dni, email string) (*Client, error) {
	client := &Client{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		DNI:       dni,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	return client, nil
}

// Validate checks if the Client has valid data.
// Returns a *ValidationError describing the first field that fails.
func (c *Client) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyClientID
	}

	if IsBlank(c.FirstName) {
		return ErrEmptyFirstName
	}

	if IsBlank(c.LastName) {
		return ErrEmptyLastName
	}

	if IsBlank(c.DNI) {
		return ErrEmptyDNI
	}

	if IsBlank(c.Email) {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(c.Email) {
		return ErrMalformedEmail
	}

	return nil
}

// EmailEquals reports whether the client's email matches the given one,
// compared case-insensitively. Email uniqueness across the system is
// case-insensitive, while the stored casing is preserved as supplied.
func (c *Client) EmailEquals(email string) bool {
	return strings.EqualFold(c.Email, email)
}

// IsBlank reports whether s is empty or consists only of whitespace.
// Blankness is a business rule here, not just a structural one: a client
// field made of spaces is as invalid as a missing one.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
//
// This check is intentionally simple: the HTTP boundary already runs the
// validator library's email rule, and this is only the service-level
// safety net for callers that bypass the boundary.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for a dot in the domain part, not immediately after the @
	// and not at the end.
	domainPart := email[atIndex+1:]
	dotIndex := strings.IndexByte(domainPart, '.')
	if dotIndex <= 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}
