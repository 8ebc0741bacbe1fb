package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/sahildmk/intention-app/pkg/ctxutil"
)

const (
	writeWait        = 10 * time.Second
	maxInFlightCalls = 8
)

// WSRequest is one procedure call sent over the socket.
type WSRequest struct {
	ID        string          `json:"id"`
	Procedure string          `json:"procedure"`
	Input     json.RawMessage `json:"input,omitempty"`
}

// WSResponse answers the request with the same id.
type WSResponse struct {
	ID     string        `json:"id"`
	Result Envelope[any] `json:"result"`
}

// WSConfig tunes the WebSocket transport.
type WSConfig struct {
	ReadLimit    int64
	PingInterval time.Duration
	// CheckOrigin defaults to accepting every origin; CORS does not apply to
	// WebSocket upgrades.
	CheckOrigin func(r *http.Request) bool
}

// WSHandler serves GET /rpc/ws. The session is resolved once at upgrade time.
type WSHandler struct {
	reg      *Registry
	log      *slog.Logger
	cfg      WSConfig
	upgrader websocket.Upgrader
}

// NewWSHandler creates a WebSocket transport over reg.
func NewWSHandler(reg *Registry, logger *slog.Logger, cfg WSConfig) *WSHandler {
	check := cfg.CheckOrigin
	if check == nil {
		check = func(*http.Request) bool { return true }
	}
	return &WSHandler{
		reg: reg,
		log: logger.With("handler", "rpc_ws"),
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     check,
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.SessionFromCtx(r.Context()); !ok {
		writeEnvelope(w, Envelope[any]{Error: &Error{Code: CodeUnauthorized, Message: "authentication required"}})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.log.WarnContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	h.serve(r.Context(), conn)
}

func (h *WSHandler) serve(ctx context.Context, conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if h.cfg.ReadLimit > 0 {
		conn.SetReadLimit(h.cfg.ReadLimit)
	}

	// Closing the connection unblocks ReadJSON once ctx ends.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	var writeMu sync.Mutex
	send := func(resp WSResponse) {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			h.log.DebugContext(ctx, "websocket write failed", slog.String("error", err.Error()))
			cancel()
		}
	}

	if h.cfg.PingInterval > 0 {
		h.keepAlive(ctx, conn)
	} else {
		// Drop the deadline left by the server's ReadTimeout.
		_ = conn.SetReadDeadline(time.Time{})
	}

	calls := &errgroup.Group{}
	calls.SetLimit(maxInFlightCalls)
	defer calls.Wait() //nolint:errcheck

	for {
		var req WSRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !isClosed(err) {
				h.log.DebugContext(ctx, "websocket read ended", slog.String("error", err.Error()))
			}
			return
		}
		if req.ID == "" {
			send(WSResponse{Result: Envelope[any]{Error: &Error{Code: CodeInvalidInput, Message: "request id required"}}})
			continue
		}
		calls.Go(func() error {
			send(WSResponse{ID: req.ID, Result: h.reg.Call(ctx, req.Procedure, req.Input)})
			return nil
		})
	}
}

// keepAlive pings on PingInterval and expects a pong within two intervals.
func (h *WSHandler) keepAlive(ctx context.Context, conn *websocket.Conn) {
	wait := 2 * h.cfg.PingInterval
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wait))
	})

	go func() {
		ticker := time.NewTicker(h.cfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()
}

func isClosed(err error) bool {
	var closeErr *websocket.CloseError
	return errors.As(err, &closeErr) || errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed)
}
