package sonicchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// DefaultHTTPTimeout defines the timeout used by clients created without a
// custom http.Client. It is intentionally short to avoid hanging network calls.
const DefaultHTTPTimeout = 15 * time.Second

// Client wraps the HTTP interactions with the SonicChat REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Message mirrors a chat message as returned by the API.
type Message struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Price mirrors the spot price payload returned by the API.
type Price struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap string  `json:"market_cap"`
	Volume24h string  `json:"volume_24h"`
}

// APIError represents server side validation or internal errors.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("sonicchat api error (%d): %s", e.StatusCode, e.Message)
}

// NewClient instantiates a client for the SonicChat API. When httpClient is
// nil, a default client with a sensible timeout is used.
func NewClient(rawURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// SendMessage posts a user message to a session and returns the assistant
// reply. imageURL may be empty.
func (c *Client) SendMessage(ctx context.Context, sessionID, message, imageURL string) (Message, error) {
	payload := struct {
		Message  string `json:"message"`
		ImageURL string `json:"image_url,omitempty"`
	}{Message: message, ImageURL: imageURL}

	var reply Message
	endpoint := fmt.Sprintf("/api/v1/sessions/%s/messages", url.PathEscape(sessionID))
	if err := c.post(ctx, endpoint, payload, &reply); err != nil {
		return Message{}, err
	}
	return reply, nil
}

// History fetches the full message history of a session in order.
func (c *Client) History(ctx context.Context, sessionID string) ([]Message, error) {
	var history []Message
	endpoint := fmt.Sprintf("/api/v1/sessions/%s/messages", url.PathEscape(sessionID))
	if err := c.get(ctx, endpoint, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ConfirmSwap executes the pending swap quote of a session.
func (c *Client) ConfirmSwap(ctx context.Context, sessionID string) (Message, error) {
	var reply Message
	endpoint := fmt.Sprintf("/api/v1/sessions/%s/swap/confirm", url.PathEscape(sessionID))
	if err := c.post(ctx, endpoint, nil, &reply); err != nil {
		return Message{}, err
	}
	return reply, nil
}

// CancelSwap discards the pending swap quote of a session.
func (c *Client) CancelSwap(ctx context.Context, sessionID string) (Message, error) {
	var reply Message
	endpoint := fmt.Sprintf("/api/v1/sessions/%s/swap/cancel", url.PathEscape(sessionID))
	if err := c.post(ctx, endpoint, nil, &reply); err != nil {
		return Message{}, err
	}
	return reply, nil
}

// GetPrice fetches the spot price for a token symbol.
func (c *Client) GetPrice(ctx context.Context, symbol string) (Price, error) {
	var price Price
	endpoint := "/api/v1/price?symbol=" + url.QueryEscape(symbol)
	if err := c.get(ctx, endpoint, &price); err != nil {
		return Price{}, err
	}
	return price, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	rel := &url.URL{Path: path.Join(c.baseURL.Path, parsed.Path), RawQuery: parsed.RawQuery}
	u := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := APIError{StatusCode: resp.StatusCode}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read error response: %w", err)
		}
		if len(data) > 0 {
			_ = json.Unmarshal(data, &apiErr)
		}
		if apiErr.Message == "" {
			apiErr.Message = string(bytes.TrimSpace(data))
		}
		return &apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
