package rpc

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ProcedureParam is the chi URL parameter holding the procedure name.
const ProcedureParam = "procedure"

// HTTPHandler serves POST /rpc/{procedure}. The body is the procedure input.
type HTTPHandler struct {
	reg          *Registry
	maxBodyBytes int64
}

// NewHTTPHandler creates an HTTP transport over reg.
func NewHTTPHandler(reg *Registry, maxBodyBytes int64) *HTTPHandler {
	return &HTTPHandler{reg: reg, maxBodyBytes: maxBodyBytes}
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, ProcedureParam)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		msg := "unreadable body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "body too large"
		}
		writeEnvelope(w, Envelope[any]{Error: &Error{Code: CodeInvalidInput, Message: msg}})
		return
	}

	writeEnvelope(w, h.reg.Call(r.Context(), name, body))
}

func writeEnvelope(w http.ResponseWriter, env Envelope[any]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(env))
	json.NewEncoder(w).Encode(env) //nolint:errcheck
}
