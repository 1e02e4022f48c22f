// Package httpx provides JSON response utilities for the API surface.
//
// Every API response carries an "ok" flag so clients can branch without
// inspecting status codes: {"ok":true, ...} on success, {"ok":false,
// "error":"<kind>"} on failure. Error kinds are stable machine-readable
// strings, not prose.
package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// OK sends a success envelope merged with the given payload fields.
func OK(w http.ResponseWriter, status int, fields map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	JSON(w, status, body)
}

// Fail sends a failure envelope with a machine-readable error kind.
func Fail(w http.ResponseWriter, status int, kind string) {
	JSON(w, status, map[string]any{"ok": false, "error": kind})
}

// DecodeJSON decodes the request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
