package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/internal/service/collection"
	"github.com/sahildmk/intention-app/internal/transport/rpc"
	"github.com/sahildmk/intention-app/pkg/ctxutil"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "correct horse"
)

// fakeServer speaks the auth and procedure protocols over an in-memory store.
// Procedures go through the real rpc registry and HTTP handler.
type fakeServer struct {
	t      *testing.T
	srv    *httptest.Server
	userID uuid.UUID

	mu       sync.Mutex
	seq      int
	access   map[string]bool
	refresh  map[string]bool
	items    map[uuid.UUID]domain.CollectionItem
	refreshN int
	rpcN     int
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{
		t:       t,
		userID:  uuid.New(),
		access:  map[string]bool{},
		refresh: map[string]bool{},
		items:   map[uuid.UUID]domain.CollectionItem{},
	}

	reg := rpc.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rpc.RegisterCollection(reg, f)

	r := chi.NewRouter()
	r.Post("/auth/login", f.login)
	r.Post("/auth/register", f.register)
	r.Post("/auth/refresh", f.rotate)
	r.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.With(f.auth).Post("/rpc/{"+rpc.ProcedureParam+"}", rpc.NewHTTPHandler(reg, 1<<16).ServeHTTP)

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) URL() string { return f.srv.URL }

// revokeAccess invalidates every issued access token.
func (f *fakeServer) revokeAccess() {
	f.mu.Lock()
	f.access = map[string]bool{}
	f.mu.Unlock()
}

// revokeAll invalidates access and refresh tokens.
func (f *fakeServer) revokeAll() {
	f.mu.Lock()
	f.access = map[string]bool{}
	f.refresh = map[string]bool{}
	f.mu.Unlock()
}

func (f *fakeServer) counts() (refreshes, rpcs int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshN, f.rpcN
}

func (f *fakeServer) issue(w http.ResponseWriter, status int) {
	f.mu.Lock()
	f.seq++
	access := fmt.Sprintf("access-%d", f.seq)
	refresh := fmt.Sprintf("refresh-%d", f.seq)
	f.access[access] = true
	f.refresh[refresh] = true
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    900,
		"user":         map[string]string{"id": f.userID.String(), "email": testEmail, "name": "Ada"},
	})
}

func fail(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"ok":false,"error":{"code":%q,"message":"nope"}}`, code)
}

func (f *fakeServer) login(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "INVALID_INPUT")
		return
	}
	if req.Email != testEmail || req.Password != testPassword {
		fail(w, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}
	f.issue(w, http.StatusOK)
}

func (f *fakeServer) register(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email string }
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email == testEmail {
		fail(w, http.StatusConflict, "ALREADY_EXISTS")
		return
	}
	f.issue(w, http.StatusCreated)
}

func (f *fakeServer) rotate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.refreshN++
	ok := f.refresh[req.RefreshToken]
	delete(f.refresh, req.RefreshToken)
	f.mu.Unlock()

	if !ok {
		fail(w, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}
	f.issue(w, http.StatusOK)
}

func (f *fakeServer) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		f.mu.Lock()
		f.rpcN++
		ok := f.access[token]
		f.mu.Unlock()

		if ok {
			r = r.WithContext(ctxutil.WithSession(r.Context(), ctxutil.Session{
				UserID:    f.userID,
				ExpiresAt: time.Now().Add(time.Hour),
			}))
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// collection service over a map
// ---------------------------------------------------------------------------

func (f *fakeServer) ListItems(ctx context.Context) ([]domain.CollectionItem, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CollectionItem, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDateTime.Before(out[j].StartDateTime) })
	return out, nil
}

func (f *fakeServer) ListCurrentAndFutureItems(ctx context.Context) ([]domain.CollectionItem, error) {
	all, err := f.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := all[:0]
	for _, it := range all {
		if !it.EndDateTime.Before(now) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeServer) CreateItem(ctx context.Context, in collection.CreateItemInput) (*domain.CollectionItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	item := domain.CollectionItem{
		ID:              uuid.New(),
		UserID:          userID,
		Content:         in.Content,
		StartDateTime:   in.StartDateTime.UTC(),
		EndDateTime:     in.EndDateTime.UTC(),
		CreatedDateTime: time.Now().UTC(),
	}
	f.mu.Lock()
	f.items[item.ID] = item
	f.mu.Unlock()
	return &item, nil
}

func (f *fakeServer) UpdateItem(ctx context.Context, in collection.UpdateItemInput) (*domain.CollectionItem, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[in.ItemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item.Content = in.Content
	if in.StartDateTime != nil {
		item.StartDateTime = in.StartDateTime.UTC()
	}
	if in.EndDateTime != nil {
		item.EndDateTime = in.EndDateTime.UTC()
	}
	f.items[in.ItemID] = item
	return &item, nil
}
