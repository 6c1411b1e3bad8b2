package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fluxpad/fluxpad/internal/client/session"
)

// HTTPClient talks JSON over HTTP to the backend. The access token is
// persisted in the session store so it survives restarts; the refresh
// token lives only in memory for the lifetime of the process.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	store        session.Store
	accessToken  string
	refreshToken string
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(endpointURL string, timeout time.Duration, store session.Store) *HTTPClient {
	return &HTTPClient{
		baseURL: endpointURL,
		http:    &http.Client{Timeout: timeout},
		store:   store,
	}
}

// RestoreSession loads a previously saved access token, if any.
func (c *HTTPClient) RestoreSession(ctx context.Context) error {
	token, err := c.store.Get(ctx)
	if err != nil {
		return err
	}
	c.accessToken = token
	return nil
}

// HasSession reports whether an access token is currently held.
func (c *HTTPClient) HasSession() bool {
	return c.accessToken != ""
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenResponse struct {
	User         Identity `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, withToken bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken && c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	return resp, nil
}

// doAuthorized performs an authenticated request. On the first 401 it
// tries to refresh the access token once and repeats the request; if
// the refresh fails, or the retried request is rejected again, the
// stored session is purged.
func (c *HTTPClient) doAuthorized(ctx context.Context, method, path string, body any) (*http.Response, error) {
	resp, err := c.do(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	if err := c.refresh(ctx); err != nil {
		if errors.Is(err, ErrUnavailable) {
			return nil, err
		}
		if clearErr := c.purgeSession(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, ErrUnauthorized
	}

	resp, err = c.do(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}

	// A 401 on the retried request means the subject itself is gone
	// (refresh never checks the store), so the session is dead.
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if clearErr := c.purgeSession(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, ErrUnauthorized
	}

	return resp, nil
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	if c.refreshToken == "" {
		return ErrUnauthorized
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": c.refreshToken}, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(resp)
	}

	var tr refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return err
	}

	c.accessToken = tr.AccessToken
	return c.store.Set(ctx, c.accessToken)
}

func (c *HTTPClient) purgeSession(ctx context.Context) error {
	c.accessToken = ""
	c.refreshToken = ""
	return c.store.Clear(ctx)
}

func (c *HTTPClient) errorFromResponse(resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrEmailTaken
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		if er.Error != "" {
			return fmt.Errorf("%w: %s", ErrBadRequest, er.Error)
		}
		return ErrBadRequest
	default:
		if er.Error != "" {
			return fmt.Errorf("server error: %s", er.Error)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/ping", nil, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrUnavailable
	}

	var pr struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return err
	}
	if pr.Status != "pong" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, email string, password string, fullName string) (*Identity, error) {
	body := map[string]string{"email": email, "password": password, "full_name": fullName}

	resp, err := c.do(ctx, http.MethodPost, "/auth/register", body, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.errorFromResponse(resp)
	}

	return c.acceptTokens(ctx, resp)
}

func (c *HTTPClient) Login(ctx context.Context, email string, password string) (*Identity, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", body, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	return c.acceptTokens(ctx, resp)
}

func (c *HTTPClient) acceptTokens(ctx context.Context, resp *http.Response) (*Identity, error) {
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, err
	}

	c.accessToken = tr.AccessToken
	c.refreshToken = tr.RefreshToken
	if err := c.store.Set(ctx, c.accessToken); err != nil {
		return nil, err
	}

	return &tr.User, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*Identity, error) {
	resp, err := c.doAuthorized(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	resp, err := c.doAuthorized(ctx, http.MethodDelete, "/auth/delete", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(resp)
	}

	return c.purgeSession(ctx)
}

// Logout discards the session locally. Tokens are self-contained, so
// there is nothing to revoke server-side.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.purgeSession(ctx)
}

func (c *HTTPClient) ListDatasets(ctx context.Context) ([]*Dataset, error) {
	resp, err := c.doAuthorized(ctx, http.MethodGet, "/datasets", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var datasets []*Dataset
	if err := json.NewDecoder(resp.Body).Decode(&datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (c *HTTPClient) QueryHistory(ctx context.Context) ([]*QueryRecord, error) {
	resp, err := c.doAuthorized(ctx, http.MethodGet, "/queries", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var records []*QueryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
