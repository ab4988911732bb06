package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it as the HTTP response body.
//
// It sets the "Content-Type" header to "application/json" and writes the
// provided status code before the body. Handlers pass it run projections,
// item views, and decryption states; none of those carry plaintext amounts,
// so serialization is safe by construction.
//
// If marshaling fails, the client receives 500 Internal Server Error and the
// wrapped marshal error is returned to the caller for logging.
//
// Returns the number of bytes written and a non-nil error only when
// marshaling fails.
//
// Example usage:
//
//	utils.WriteJSON(w, models.InitRunResponse{Run: run}, http.StatusCreated)
//	utils.WriteJSON(w, map[string]string{"error": "run is sealed"}, http.StatusConflict)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
