package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sales-pulse/models"
	"sales-pulse/ordermatrix"
	"sales-pulse/repository"
)

// RemoteOrderClient reads orders from the sales API (GET {base}/order-pdf/{id})
type RemoteOrderClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewRemoteOrderClient creates a RemoteOrderClient. A nil httpClient gets a 30s default.
func NewRemoteOrderClient(baseURL, token string, httpClient *http.Client, logger *logrus.Entry) *RemoteOrderClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &RemoteOrderClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

var _ repository.OrderRepositoryInterface = (*RemoteOrderClient)(nil)

// orderPDFResponse mirrors the API payload: {"master": [{...}], "details": [...]}
type orderPDFResponse struct {
	Master  json.RawMessage `json:"master"`
	Details json.RawMessage `json:"details"`
}

// GetOrderForm fetches the order master and its detail lines
func (c *RemoteOrderClient) GetOrderForm(ctx context.Context, orderID string) (*models.OrderForm, error) {
	endpoint := fmt.Sprintf("%s/order-pdf/%s", c.baseURL, url.PathEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: id=%s", repository.ErrOrderNotFound, orderID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: sales API returned status %d: %s", repository.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload orderPDFResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode order response: %v", repository.ErrUpstream, err)
	}

	masters, err := ordermatrix.DecodeRecords(payload.Master)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order master: %v", repository.ErrUpstream, err)
	}
	if len(masters) == 0 {
		return nil, fmt.Errorf("%w: id=%s", repository.ErrOrderNotFound, orderID)
	}

	items, err := ordermatrix.DecodeRecords(payload.Details)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order details: %v", repository.ErrUpstream, err)
	}

	c.logger.WithFields(logrus.Fields{"order_id": orderID, "lines": len(items)}).Info("✓ GetOrderForm: order fetched from sales API")
	return &models.OrderForm{
		Header: models.MasterFromRecord(masters[0]).Header(),
		Items:  items,
	}, nil
}
