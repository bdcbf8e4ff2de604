package livingapps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/pkg/config"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

// Record is the wire envelope the record service wraps every entity in.
type Record struct {
	RecordID  string          `json:"record_id"`
	CreatedAt time.Time       `json:"createdat"`
	UpdatedAt *time.Time      `json:"updatedat"`
	Fields    json.RawMessage `json:"fields"`
}

// Observer receives timing for upstream record service calls.
type Observer interface {
	ObserveRecordCall(appID, op string, duration time.Duration)
}

// Client talks to the remote LivingApps record service. One instance serves
// all five entity collections; callers pass the app id per operation. Every
// call is a single best-effort request: no batching, no caching, no retries.
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient constructs a record service client.
func NewClient(cfg config.LivingAppsConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		observer: observer,
	}
}

// ListRecords fetches all records of one collection in service order.
func (c *Client) ListRecords(ctx context.Context, appID string) ([]Record, error) {
	var records []Record
	err := c.do(ctx, appID, "list", http.MethodGet, c.recordsURL(appID), nil, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecord fetches a single record by id.
func (c *Client) GetRecord(ctx context.Context, appID, recordID string) (*Record, error) {
	var record Record
	err := c.do(ctx, appID, "get", http.MethodGet, c.recordURL(appID, recordID), nil, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRecord submits a new record's field set and returns the persisted
// record including its generated id and timestamps.
func (c *Client) CreateRecord(ctx context.Context, appID string, fields interface{}) (*Record, error) {
	var record Record
	err := c.do(ctx, appID, "create", http.MethodPost, c.recordsURL(appID), fields, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecord replaces the field set of an existing record.
func (c *Client) UpdateRecord(ctx context.Context, appID, recordID string, fields interface{}) (*Record, error) {
	var record Record
	err := c.do(ctx, appID, "update", http.MethodPut, c.recordURL(appID, recordID), fields, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord removes a record by id. Idempotency is the service's concern.
func (c *Client) DeleteRecord(ctx context.Context, appID, recordID string) error {
	return c.do(ctx, appID, "delete", http.MethodDelete, c.recordURL(appID, recordID), nil, nil)
}

func (c *Client) recordsURL(appID string) string {
	return fmt.Sprintf("%s/%s/records", c.baseURL, appID)
}

func (c *Client) recordURL(appID, recordID string) string {
	return fmt.Sprintf("%s/%s/records/%s", c.baseURL, appID, recordID)
}

func (c *Client) do(ctx context.Context, appID, op, method, url string, fields, out interface{}) error {
	var body io.Reader
	if fields != nil {
		payload, err := json.Marshal(map[string]interface{}{"fields": fields})
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode record fields")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build record service request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveRecordCall(appID, op, duration)
	}
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "record service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet := readSnippet(resp.Body)
		c.logger.Warn("record service call failed",
			zap.String("app", appID),
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("body", snippet),
		)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return appErrors.Clone(appErrors.ErrNotFound, "record not found")
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, fmt.Sprintf("record service rejected payload: %s", snippet))
		default:
			return appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("record service returned %s", resp.Status))
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode record service response")
	}
	return nil
}

func readSnippet(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(raw))
}
