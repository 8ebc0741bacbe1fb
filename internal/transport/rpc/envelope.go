// Package rpc exposes service operations as named procedures whose results
// travel in a success/failure envelope over HTTP and WebSocket.
package rpc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/pkg/result"
)

// Code classifies a failed procedure call.
type Code string

const (
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeInvalidInput  Code = "INVALID_INPUT"
	CodeNotFound      Code = "NOT_FOUND"
	CodeStorageError  Code = "STORAGE_ERROR"
	CodeUnknownMethod Code = "UNKNOWN_PROCEDURE"

	// CodeAlreadyExists is only produced by the auth endpoints.
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)

// Error is the failure arm of an envelope.
type Error struct {
	Code    Code         `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names an input field that failed shape validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// Is lets callers on the receiving side match envelope errors against the
// domain sentinels.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case CodeUnauthorized:
		return target == domain.ErrUnauthorized
	case CodeInvalidInput:
		return target == domain.ErrValidation
	case CodeNotFound:
		return target == domain.ErrNotFound
	case CodeAlreadyExists:
		return target == domain.ErrAlreadyExists
	}
	return false
}

// Envelope is {"ok":true,"value":T} or {"ok":false,"error":Error}.
type Envelope[T any] struct {
	OK    bool
	Value T
	Error *Error
}

type okWire[T any] struct {
	OK    bool `json:"ok"`
	Value T    `json:"value"`
}

type failWire struct {
	OK    bool   `json:"ok"`
	Error *Error `json:"error"`
}

// MarshalJSON writes exactly one of value or error.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if e.OK {
		return json.Marshal(okWire[T]{OK: true, Value: e.Value})
	}
	return json.Marshal(failWire{Error: e.Error})
}

// UnmarshalJSON reads either arm. A failure without an error body is rejected.
func (e *Envelope[T]) UnmarshalJSON(data []byte) error {
	var wire struct {
		OK    bool            `json:"ok"`
		Value json.RawMessage `json:"value"`
		Error *Error          `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = Envelope[T]{OK: wire.OK, Error: wire.Error}
	if !wire.OK {
		if wire.Error == nil {
			return errors.New("rpc: failure envelope without error")
		}
		return nil
	}
	if len(wire.Value) == 0 {
		return nil
	}
	return json.Unmarshal(wire.Value, &e.Value)
}

// Result converts the envelope back to a result.Result.
func (e Envelope[T]) Result() result.Result[T] {
	if e.OK {
		return result.Ok(e.Value)
	}
	return result.Fail[T](e.Error)
}

// FromResult builds an envelope from a result, classifying the error.
func FromResult[T any](r result.Result[T]) Envelope[T] {
	var env Envelope[T]
	r.Match(
		func(v T) { env = Envelope[T]{OK: true, Value: v} },
		func(err error) { env = Envelope[T]{Error: classify(err)} },
	)
	return env
}

// classify maps service errors to envelope errors. Anything unrecognized is a
// storage error whose detail stays on the server.
func classify(err error) *Error {
	var rpcErr *Error
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case errors.Is(err, domain.ErrUnauthorized):
		return &Error{Code: CodeUnauthorized, Message: "authentication required"}
	case errors.As(err, &ve):
		out := &Error{Code: CodeInvalidInput, Message: ve.Error()}
		for _, fe := range ve.Errors {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		return out
	case errors.Is(err, domain.ErrValidation):
		return &Error{Code: CodeInvalidInput, Message: "invalid input"}
	case errors.Is(err, domain.ErrNotFound):
		return &Error{Code: CodeNotFound, Message: "collection item not found"}
	default:
		return &Error{Code: CodeStorageError, Message: "storage error"}
	}
}

// HTTPStatus is the status code used when an envelope is sent over HTTP.
// Failures that reached the procedure keep 200 so clients branch on "ok".
func HTTPStatus[T any](e Envelope[T]) int {
	if e.OK || e.Error == nil {
		return http.StatusOK
	}
	switch e.Error.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnknownMethod:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}
