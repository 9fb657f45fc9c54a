package ui

import (
	"encoding/json"
	"net/http"
)

// Every endpoint answers {"success": bool, "data"/"error": ...} with HTTP
// 200. Clients branch on the success flag, not the status code.

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
