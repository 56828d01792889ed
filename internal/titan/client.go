// Package titan talks to the carga-rastreada dashboard API and turns its
// order rows into the heat-map aggregates and the narrative insight
// report shown on the supplier dashboard.
package titan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Order is one row returned by the dashboard API. The API sends more
// columns than the dashboard reads; only the interpreted ones are typed.
type Order struct {
	DestinationUF string          `json:"destinatario_uf"`
	VolumeCount   int             `json:"qtd_volumes"`
	CTEKey        string          `json:"cte_chave"`
	Supplier      string          `json:"-"`
	Raw           json.RawMessage `json:"-"`
}

// Client fetches order rows from the dashboard API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the given API base URL, e.g.
// "http://app.cargarastreada.com.br/glovis/dashboard-api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns the orders emitted by the supplier CNPJ inside the
// inclusive date range. Network and decode failures come back as
// recoverable errors; the client never retries.
func (c *Client) Fetch(ctx context.Context, cnpj string, from, to time.Time) ([]Order, error) {
	q := url.Values{}
	q.Set("di", from.Format("2006-01-02"))
	q.Set("df", to.Format("2006-01-02"))
	q.Set("emissor", cnpj)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard data: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dashboard data: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard data: %w", err)
	}

	var rawRows []json.RawMessage
	if err := json.Unmarshal(body, &rawRows); err != nil {
		return nil, fmt.Errorf("decode dashboard data: %w", err)
	}

	orders := make([]Order, 0, len(rawRows))
	for _, raw := range rawRows {
		var o Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("decode dashboard row: %w", err)
		}
		o.Raw = raw
		orders = append(orders, o)
	}
	return orders, nil
}

// MaskCTEKey extracts the CTE number embedded in a 44-digit access key
// (positions 28-34). Shorter keys mask to the empty string.
func MaskCTEKey(key string) string {
	if len(key) < 34 {
		return ""
	}
	return key[28:34]
}
