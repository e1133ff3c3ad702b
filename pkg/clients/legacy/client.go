package legacy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"go-dairy-admin/internal/config"
)

// Client reads the collections of the old json-server store.
type Client interface {
	Products(ctx context.Context) ([]Product, error)
	Stock(ctx context.Context) ([]Stock, error)
	Purchases(ctx context.Context) ([]Purchase, error)
	Sales(ctx context.Context) ([]Sale, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a client for the json-server at cfg.BaseURL.
func NewClient(cfg config.LegacyConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2)

	return &APIClient{httpClient: restyClient}
}

func (c *APIClient) fetch(ctx context.Context, collection string, out interface{}) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(out).
		Get("/" + collection)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", collection, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("fetch %s: legacy api returned %d", collection, resp.StatusCode())
	}
	return nil
}

func (c *APIClient) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.fetch(ctx, "products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *APIClient) Stock(ctx context.Context) ([]Stock, error) {
	var stock []Stock
	if err := c.fetch(ctx, "stock", &stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (c *APIClient) Purchases(ctx context.Context) ([]Purchase, error) {
	var purchases []Purchase
	if err := c.fetch(ctx, "purchases", &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (c *APIClient) Sales(ctx context.Context) ([]Sale, error) {
	var sales []Sale
	if err := c.fetch(ctx, "sales", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
