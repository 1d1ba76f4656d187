package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/acmebank/clientms/internal/domain"
	"github.com/acmebank/clientms/internal/service"
	"github.com/acmebank/clientms/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on the
// error type. This keeps the status decision in one place and prevents
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Uniqueness conflicts
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Not found
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Refused preconditions: a client with accounts cannot be deleted.
	case errors.Is(err, service.ErrActiveAccounts):
		return http.StatusBadRequest

	// The accounts collaborator could not answer.
	case errors.Is(err, service.ErrAccountsUnavailable):
		return http.StatusServiceUnavailable

	// Invalid input
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
// Validation errors carry their own field-level message, which contains no
// internal details; everything else maps to a fixed phrase.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrDNIExists):
		return "DNI is already in use"

	case errors.Is(err, store.ErrEmailExists):
		return "Email is already in use"

	case store.IsDuplicateError(err):
		return "Client already exists"

	case store.IsNotFoundError(err):
		return "Client not found"

	case errors.Is(err, service.ErrActiveAccounts):
		return "Client has accounts and cannot be deleted"

	case errors.Is(err, service.ErrAccountsUnavailable):
		return "Accounts service is unavailable, try again later"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidID):
		// Domain validation sentinels name the offending field without
		// echoing its value.
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid client data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator library error into a
// user-friendly message without echoing the submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'CreateClientRequest.Email' Error:Field
		// validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	default:
		return "validation failed"
	}
}
