// Package apiclient is a small REST client for the InnerVentory API.
// It implements manager.Store over HTTP and is what the CLIs use.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"innerventory/internal/services/auth"
	"innerventory/internal/services/bras"
	"innerventory/internal/services/events"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrTransport is returned when the server is unreachable or answers
// with a failure status that has no more specific mapping.
var ErrTransport = errors.New("persistence layer unreachable or returned a failure status")

const requestTimeout = 10 * time.Second

// Client talks to one InnerVentory server. The zero value is not usable;
// use New. Token is set by SignIn (or SetToken) and sent as a Bearer
// header on every request.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetToken installs a previously obtained access token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do runs one request and decodes a 2xx JSON body into out (out may be
// nil). Non-2xx statuses map onto the domain error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		return events.ErrEventNotFound
	case resp.StatusCode == http.StatusConflict:
		return events.ErrRevisionConflict
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s -> %d %s", ErrTransport, method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}
}

// Register creates an account and keeps its access token.
func (c *Client) Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error) {
	var resp auth.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/sign-up", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// SignIn authenticates and keeps the access token for later calls.
func (c *Client) SignIn(ctx context.Context, email, password string) (*auth.User, error) {
	var resp auth.AuthResponse
	req := auth.SignInRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/sign-in", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// ListEvents fetches the full event collection.
func (c *Client) ListEvents(ctx context.Context) ([]*events.Event, error) {
	var resp events.ListEventsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/events", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// CreateEvent persists a new event with an empty attendee list.
func (c *Client) CreateEvent(ctx context.Context, req events.CreateEventRequest) (*events.Event, error) {
	var resp events.EventResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/events", req, &resp); err != nil {
		return nil, err
	}
	return resp.Event, nil
}

// UpdateEvent patches the scalar fields of an event.
func (c *Client) UpdateEvent(ctx context.Context, id bson.ObjectID, req events.UpdateEventRequest) (*events.Event, error) {
	var resp events.EventResponse
	if err := c.do(ctx, http.MethodPatch, "/api/v1/events/"+id.Hex(), req, &resp); err != nil {
		return nil, err
	}
	return resp.Event, nil
}

// ReplaceEvent ships the whole event document, attendees included.
func (c *Client) ReplaceEvent(ctx context.Context, id bson.ObjectID, req events.ReplaceEventRequest) (*events.Event, error) {
	var resp events.EventResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/events/"+id.Hex(), req, &resp); err != nil {
		return nil, err
	}
	return resp.Event, nil
}

// DeleteEvent removes an event and its attendees.
func (c *Client) DeleteEvent(ctx context.Context, id bson.ObjectID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/events/"+id.Hex(), nil, nil)
}

// ListBras fetches the bra inventory.
func (c *Client) ListBras(ctx context.Context) ([]*bras.Bra, error) {
	var resp bras.ListBrasResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/bras", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bras, nil
}

// CreateBra adds an item to the bra inventory.
func (c *Client) CreateBra(ctx context.Context, req bras.CreateBraRequest) (*bras.Bra, error) {
	var resp bras.BraResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bras", req, &resp); err != nil {
		return nil, err
	}
	return resp.Bra, nil
}
