package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance; validator.Validate caches struct metadata.
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct. Unknown fields
// are ignored; absent fields keep their zero value.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct with the shared validator.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}
