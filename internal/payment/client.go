package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dhruv/estate-hub/backend/internal/models"
)

// Client calls the payment gateway's orders API over HTTP with basic
// auth. It holds no state beyond credentials; the gateway owns the
// order lifecycle.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{},
	}
}

// checkResp reads the response body and returns an error if the status
// is not 2xx. On error it includes the upstream body for debugging.
func checkResp(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("gateway %s returned %d: %s", path, resp.StatusCode, string(body))
}

// CreateOrder calls POST /v1/orders and returns the gateway's order
// object as received.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.Order, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway /v1/orders: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway /v1/orders: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, "/v1/orders"); err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("gateway /v1/orders: decode: %w", err)
	}
	return &order, nil
}
