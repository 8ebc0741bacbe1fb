package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/jonboulle/clockwork"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/pkg/ctxutil"
	"github.com/sahildmk/intention-app/pkg/result"
)

// Handler runs one procedure. input is the raw JSON input, possibly empty.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Procedure is a named, optionally authenticated operation.
type Procedure struct {
	Name   string
	Public bool
	Handle Handler
}

// Registry dispatches procedure calls by name.
type Registry struct {
	log   *slog.Logger
	clock clockwork.Clock
	procs map[string]Procedure
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the clock used for session expiry checks.
func WithClock(c clockwork.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		log:   logger.With("handler", "rpc"),
		clock: clockwork.NewRealClock(),
		procs: make(map[string]Procedure),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a procedure. It panics on a duplicate or empty name since
// that is a wiring mistake.
func (r *Registry) Register(p Procedure) {
	if p.Name == "" || p.Handle == nil {
		panic("rpc: procedure needs a name and a handler")
	}
	if _, dup := r.procs[p.Name]; dup {
		panic(fmt.Sprintf("rpc: procedure %q registered twice", p.Name))
	}
	r.procs[p.Name] = p
}

// Names lists registered procedures in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.procs))
	for name := range r.procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the named procedure and wraps the outcome in an envelope.
// The session is checked before the input is decoded, and both happen before
// the handler runs.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) Envelope[any] {
	proc, ok := r.procs[name]
	if !ok {
		return Envelope[any]{Error: &Error{Code: CodeUnknownMethod, Message: fmt.Sprintf("unknown procedure %q", name)}}
	}

	if !proc.Public {
		sess, ok := ctxutil.SessionFromCtx(ctx)
		if !ok || sess.Expired(r.clock.Now()) {
			return Envelope[any]{Error: &Error{Code: CodeUnauthorized, Message: "authentication required"}}
		}
	}

	res := result.Process(func() (any, error) { return proc.Handle(ctx, input) })
	env := FromResult(res)
	if !env.OK && env.Error.Code == CodeStorageError {
		r.log.ErrorContext(ctx, "procedure failed",
			slog.String("procedure", name),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			slog.String("error", res.Err().Error()))
	}
	return env
}

// Typed adapts a function with a typed input and output into a Handler.
// Input is decoded strictly: unknown fields and trailing data are rejected.
// An empty or null input decodes to the zero value of In.
func Typed[In, Out any](fn func(ctx context.Context, in In) (Out, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var in In
		if err := decodeInput(raw, &in); err != nil {
			return nil, err
		}
		return fn(ctx, in)
	}
}

// NoInput adapts a function without input. Any non-empty input is rejected.
func NoInput[Out any](fn func(ctx context.Context) (Out, error)) Handler {
	return Typed(func(ctx context.Context, _ struct{}) (Out, error) { return fn(ctx) })
}

func decodeInput(raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("input", describeDecodeError(err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("input", "unexpected data after object")
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type)
		}
		return "expected " + typeErr.Type.String()
	case errors.As(err, &syntaxErr):
		return "malformed JSON"
	default:
		return err.Error()
	}
}
