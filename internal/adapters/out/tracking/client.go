// Package tracking implements the parcel-tracking collaborator ports over
// the tracking service's HTTP API. One client serves all three facts the
// engine consumes: return eligibility, exchange parcel creation and dispatch
// status.
package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Client calls the parcel-tracking service. Implements
// ports.ParcelEligibility, ports.ExchangeParcelFactory and
// ports.ExchangeParcelTracker.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a tracking client for the given base URL. A zero timeout
// falls back to the default; every call is bounded so a slow tracking
// service cannot hold a case transaction open.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type eligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

// CanRegisterReturn reports whether the parcel is currently eligible to
// start a return.
func (c *Client) CanRegisterReturn(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	url := fmt.Sprintf("%s/api/v1/parcels/%s/return-eligibility", c.baseURL, parcelID)

	var response eligibilityResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return false, err
	}

	return response.Eligible, nil
}

type exchangeParcelResponse struct {
	ID          string `json:"id"`
	TrackNumber string `json:"trackNumber"`
}

// Create creates the outgoing exchange parcel for the given source parcel
// and returns its identity.
func (c *Client) Create(ctx context.Context, parcelID kernel.UUID) (ports.ExchangeParcelSummary, error) {
	url := fmt.Sprintf("%s/api/v1/parcels/%s/exchange-parcels", c.baseURL, parcelID)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(nil))
	if err != nil {
		return ports.ExchangeParcelSummary{}, err
	}
	request.Header.Set("Content-Type", "application/json")

	var response exchangeParcelResponse
	if err = c.do(request, &response); err != nil {
		return ports.ExchangeParcelSummary{}, err
	}

	id, err := kernel.UUIDFromString(response.ID)
	if err != nil {
		return ports.ExchangeParcelSummary{}, err
	}

	number, err := kernel.NewTrackNumber(response.TrackNumber)
	if err != nil {
		return ports.ExchangeParcelSummary{}, err
	}

	return ports.ExchangeParcelSummary{ID: id, Number: number}, nil
}

type dispatchStatusResponse struct {
	Dispatched bool `json:"dispatched"`
}

// IsDispatched reports whether the exchange parcel has already been handed
// to the carrier.
func (c *Client) IsDispatched(ctx context.Context, exchangeParcelID kernel.UUID) (bool, error) {
	url := fmt.Sprintf("%s/api/v1/parcels/%s/dispatch-status", c.baseURL, exchangeParcelID)

	var response dispatchStatusResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return false, err
	}

	return response.Dispatched, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	return c.do(request, out)
}

func (c *Client) do(request *http.Request, out any) error {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("tracking service request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("tracking service returned %d: %s",
			response.StatusCode, strings.TrimSpace(string(body)))
	}

	if err = json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("tracking service response is malformed: %w", err)
	}

	return nil
}
