package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/internal/transport/rpc"
)

// GetCollectionItems lists every item of the signed-in user, earliest first.
func (c *Client) GetCollectionItems(ctx context.Context) ([]domain.CollectionItem, error) {
	dtos, err := call[[]rpc.ItemDTO](ctx, c, rpc.ProcGetCollectionItems, nil)
	if err != nil {
		return nil, err
	}
	return toItems(dtos)
}

// GetCurrentAndFutureCollectionItems lists the items that have not ended yet.
func (c *Client) GetCurrentAndFutureCollectionItems(ctx context.Context) ([]domain.CollectionItem, error) {
	dtos, err := call[[]rpc.ItemDTO](ctx, c, rpc.ProcGetCurrentAndFutureCollectionItems, nil)
	if err != nil {
		return nil, err
	}
	return toItems(dtos)
}

// CreateCollectionItem stores a new item owned by the signed-in user.
func (c *Client) CreateCollectionItem(ctx context.Context, content string, start, end time.Time) (domain.CollectionItem, error) {
	dto, err := call[rpc.ItemDTO](ctx, c, rpc.ProcCreateCollectionItem, rpc.CreateItemRequest{
		Content:       &content,
		StartDateTime: rpc.FormatTime(start),
		EndDateTime:   rpc.FormatTime(end),
	})
	if err != nil {
		return domain.CollectionItem{}, err
	}
	return dto.ToDomain()
}

// UpdateCollectionItem overwrites content, and start or end when given.
func (c *Client) UpdateCollectionItem(ctx context.Context, id uuid.UUID, content string, start, end *time.Time) (domain.CollectionItem, error) {
	req := rpc.UpdateItemRequest{
		CollectionItemID: id.String(),
		Content:          &content,
	}
	if start != nil {
		s := rpc.FormatTime(*start)
		req.StartDateTime = &s
	}
	if end != nil {
		e := rpc.FormatTime(*end)
		req.EndDateTime = &e
	}

	dto, err := call[rpc.ItemDTO](ctx, c, rpc.ProcUpdateCollectionItem, req)
	if err != nil {
		return domain.CollectionItem{}, err
	}
	return dto.ToDomain()
}

func toItems(dtos []rpc.ItemDTO) ([]domain.CollectionItem, error) {
	out := make([]domain.CollectionItem, 0, len(dtos))
	for _, d := range dtos {
		item, err := d.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("client: decode item %s: %w", d.ID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Procedure calls
// ---------------------------------------------------------------------------

// call invokes a procedure with the current access token. An UNAUTHORIZED
// reply triggers one refresh and one retry.
func call[Out any](ctx context.Context, c *Client, name string, in any) (Out, error) {
	var zero Out

	token, err := c.accessToken(ctx)
	if err != nil {
		return zero, err
	}

	env, err := send[Out](ctx, c, name, token, in)
	if err != nil {
		return zero, err
	}
	if !env.OK && env.Error.Code == rpc.CodeUnauthorized {
		if err := c.refresh(ctx, token); err != nil {
			return zero, err
		}
		env, err = send[Out](ctx, c, name, c.session().AccessToken, in)
		if err != nil {
			return zero, err
		}
	}

	if !env.OK {
		return zero, env.Error
	}
	return env.Value, nil
}

// accessToken returns a token that has not expired locally, refreshing first
// when needed.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	sess := c.session()
	if !sess.valid() {
		return "", notSignedIn()
	}
	if !sess.ExpiresAt.IsZero() && c.clock.Now().Add(expirySkew).After(sess.ExpiresAt) {
		if err := c.refresh(ctx, sess.AccessToken); err != nil {
			return "", err
		}
		sess = c.session()
	}
	return sess.AccessToken, nil
}

func send[Out any](ctx context.Context, c *Client, name, token string, in any) (rpc.Envelope[Out], error) {
	path := "/rpc/" + url.PathEscape(name)
	resp, err := c.post(ctx, path, token, in)
	if err != nil {
		return rpc.Envelope[Out]{}, err
	}
	data, err := readBody(resp)
	if err != nil {
		return rpc.Envelope[Out]{}, err
	}

	var env rpc.Envelope[Out]
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return rpc.Envelope[Out]{}, fmt.Errorf("client: %s: unexpected status %d", path, resp.StatusCode)
		}
		return rpc.Envelope[Out]{}, fmt.Errorf("client: decode %s: %w", path, err)
	}
	return env, nil
}
