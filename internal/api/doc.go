// Package api handles incoming HTTP requests, request validation, and
// response formatting for the client registry. It adapts HTTP concerns to
// the client service operations and centralizes the error-to-status mapping
// so no internal detail leaks to callers.
package api
