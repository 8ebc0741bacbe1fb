package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sahildmk/intention-app/internal/transport/rpc"
)

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	User         User   `json:"user"`
}

// Register creates an account and signs in.
func (c *Client) Register(ctx context.Context, email, name, password string) (User, error) {
	return c.authenticate(ctx, "/auth/register", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	})
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (User, error) {
	sess, err := c.exchange(ctx, path, "", body)
	if err != nil {
		return User{}, err
	}
	c.setSession(sess)
	c.log.InfoContext(ctx, "signed in", slog.String("user_id", sess.User.ID))
	return sess.User, nil
}

// Logout revokes the server session and forgets the local one. The local
// session is dropped even when the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	sess := c.session()
	c.setSession(Session{})
	if !sess.valid() {
		return nil
	}

	resp, err := c.post(ctx, "/auth/logout", sess.AccessToken, nil)
	if err != nil {
		return err
	}
	data, err := readBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusUnauthorized {
		return failure("/auth/logout", resp.StatusCode, data)
	}
	return nil
}

// refresh rotates the tokens unless another caller already replaced stale.
// A rejected refresh token signs the client out.
func (c *Client) refresh(ctx context.Context, stale string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	cur := c.session()
	if cur.AccessToken != stale && cur.valid() {
		return nil
	}
	if !cur.valid() {
		return notSignedIn()
	}

	sess, err := c.exchange(ctx, "/auth/refresh", "", map[string]string{"refreshToken": cur.RefreshToken})
	if err != nil {
		var rpcErr *rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.Code == rpc.CodeUnauthorized {
			c.log.InfoContext(ctx, "refresh rejected, signing out")
			c.setSession(Session{})
		}
		return err
	}
	c.setSession(sess)
	c.log.DebugContext(ctx, "tokens refreshed")
	return nil
}

// exchange posts to an auth endpoint and turns the reply into a Session.
func (c *Client) exchange(ctx context.Context, path, token string, body any) (Session, error) {
	resp, err := c.post(ctx, path, token, body)
	if err != nil {
		return Session{}, err
	}
	data, err := readBody(resp)
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, failure(path, resp.StatusCode, data)
	}

	var ar authResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return Session{}, fmt.Errorf("client: decode %s: %w", path, err)
	}
	return Session{
		AccessToken:  ar.AccessToken,
		RefreshToken: ar.RefreshToken,
		ExpiresAt:    c.clock.Now().Add(time.Duration(ar.ExpiresIn) * time.Second),
		User:         ar.User,
	}, nil
}

func notSignedIn() error {
	return &rpc.Error{Code: rpc.CodeUnauthorized, Message: "not signed in"}
}
