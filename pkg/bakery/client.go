package bakery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
)

const errorBodyReadLimit int64 = 4096

var errBaseURLRequired = errors.New("bakery base url is required")

// Client wraps the bakery backend API: product catalog reads and the single
// order write.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds a client for the given backend base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return client, nil
}

// ProductVariant is an optional sub-selection that changes the unit price.
type ProductVariant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

// Product is one catalog record as the backend serves it.
type Product struct {
	ID          string           `json:"_id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	ImageURL    string           `json:"imageUrl"`
	Badge       string           `json:"badge,omitempty"`
	Description string           `json:"description,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// OrderItem is one submitted order line.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderPayload is the immutable order draft the backend accepts.
type OrderPayload struct {
	CustomerName    string      `json:"customerName"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	DeliveryMethod  string      `json:"deliveryMethod"`
	DeliveryAddress *string     `json:"deliveryAddress"`
	DeliveryDate    string      `json:"deliveryDate"`
	DeliveryTime    string      `json:"deliveryTime"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
}

// OrderConfirmation is the created-order representation the backend returns.
type OrderConfirmation struct {
	ID          string  `json:"_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
}

type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ListProducts fetches the catalog for a category.
func (c *Client) ListProducts(ctx context.Context, category string) ([]Product, error) {
	endpoint := c.baseURL + "/api/products"
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build products request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "fetch products")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.CodeNetwork, "product catalog request failed").WithDetails(map[string]any{
			"status": resp.StatusCode,
		})
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "decode products response")
	}
	return products, nil
}

// CreateOrder performs the single order write. A non-2xx response surfaces
// the server's reason when the body carries one.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*OrderConfirmation, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build order request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "submit order")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rejectionError(resp)
	}

	var confirmation OrderConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		// The write already happened; a garbled body must not fail the order.
		return &OrderConfirmation{}, nil
	}
	return &confirmation, nil
}

// Ping verifies the backend is reachable, for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build ping request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "ping backend")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
	if resp.StatusCode >= 500 {
		return pkgerrors.New(pkgerrors.CodeNetwork, fmt.Sprintf("backend returned %d", resp.StatusCode))
	}
	return nil
}

func rejectionError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	reason := ""
	var decoded backendError
	if err := json.Unmarshal(raw, &decoded); err == nil {
		if decoded.Message != "" {
			reason = decoded.Message
		} else if decoded.Error != "" {
			reason = decoded.Error
		}
	}

	message := "bakery declined the order"
	details := map[string]any{"status": resp.StatusCode}
	if reason != "" {
		message = reason
		details["reason"] = reason
	}
	return pkgerrors.New(pkgerrors.CodeOrderRejected, message).WithDetails(details)
}
