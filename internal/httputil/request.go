package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxJSONBody bounds JSON request bodies; uploads go through multipart instead
const maxJSONBody = 1 << 20

// ParseJSON decodes the request body into dest. Unknown fields are ignored.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	return decodeJSON(w, r, dest, false)
}

// ParseJSONStrict decodes the request body into dest and rejects fields
// dest does not declare.
func ParseJSONStrict(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	return decodeJSON(w, r, dest, true)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}, strict bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	decoder := json.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}

	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if decoder.More() {
		return errors.New("invalid JSON: unexpected data after the object")
	}

	return nil
}
