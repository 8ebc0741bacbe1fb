package middleware

import (
	"encoding/json"
	"net/http"
)

// failure mirrors the failure arm of the procedure envelope so that clients
// decode middleware rejections the same way as procedure results.
type failure struct {
	OK    bool        `json:"ok"`
	Error failureBody `json:"error"`
}

type failureBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeFailure(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failure{Error: failureBody{Code: code, Message: message}})
}
