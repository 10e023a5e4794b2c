package controller

import (
	"encoding/json"
	"log"
	"net/http"
)

// Fixed client-visible messages. Causes of transaction failures are logged
// server-side only and never returned to the caller.
const (
	msgTransactionFailed = "transaction failed"
	msgVersionConflict   = "version conflict: the record was modified by another request"
)

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// respondError writes a JSON error body with a fixed message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
