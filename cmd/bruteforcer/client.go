package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/service"
)

// Client talks to one session of a running game server.
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID returns the session the client is bound to.
func (c *Client) SessionID() string {
	return c.sessionID
}

// CreateSession starts a session for configID and binds the client to it.
func (c *Client) CreateSession(ctx context.Context, configID string) (*engine.GameState, error) {
	var req any
	if configID != "" {
		req = map[string]string{"config_id": configID}
	}

	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", req, &info); err != nil {
		return nil, errors.Wrap(err, "create session")
	}
	c.sessionID = info.ID
	return info.GameState, nil
}

// Resume binds the client to an existing session and returns its state.
func (c *Client) Resume(ctx context.Context, sessionID string) (*engine.GameState, error) {
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(sessionID), nil, &info); err != nil {
		return nil, errors.Wrap(err, "get session")
	}
	c.sessionID = info.ID
	return info.GameState, nil
}

// Reset restarts the bound session, resizing the board when rows and cols
// are both positive.
func (c *Client) Reset(ctx context.Context, rows, cols int) (*engine.GameState, error) {
	var req any
	if rows > 0 && cols > 0 {
		req = map[string]int{"rows": rows, "cols": cols}
	}

	var res service.ActionResult
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/reset"), req, &res); err != nil {
		return nil, errors.Wrap(err, "reset")
	}
	if !res.Success {
		return res.GameState, errors.Errorf("reset rejected (%s): %s", res.Code, res.Message)
	}
	return res.GameState, nil
}

// Place clicks pos on the bound tour session. A rejected move is not an
// error; callers inspect the result.
func (c *Client) Place(ctx context.Context, pos grid.Position) (*service.ActionResult, error) {
	var res service.ActionResult
	err := c.do(ctx, http.MethodPost, c.sessionPath("/tour/move"), map[string]int{"row": pos.Row, "col": pos.Col}, &res)
	if err != nil && res.GameState == nil {
		return nil, errors.Wrapf(err, "place %s", pos)
	}
	return &res, nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + url.PathEscape(c.sessionID) + suffix
}

// do sends body as JSON and decodes the response into result. On a non-2xx
// status result is still filled when the body decodes, and the returned
// error carries the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, result)
		_ = json.Unmarshal(data, &apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Message
		}
		return errors.Errorf("%s - %s", resp.Status, msg)
	}

	if err := json.Unmarshal(data, result); err != nil {
		return errors.Wrap(err, "parse response")
	}
	return nil
}
