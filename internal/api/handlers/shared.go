package handlers

import (
	"encoding/json"
	"net/http"
)

// parseJSON decodes the request body into the given request type.
// Unknown fields are tolerated; the validation layer decides what is required.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}
