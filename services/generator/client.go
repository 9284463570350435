package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"voyago/models"
)

// Failure classes for a generation request. The caller distinguishes them
// because their recovery paths differ.
var (
	// ErrPayloadRejected means the generator refused the request payload.
	ErrPayloadRejected = errors.New("generation request rejected")
	// ErrAuthExpired means the caller's session is no longer valid upstream.
	ErrAuthExpired = errors.New("authorization expired")
	// ErrTransient covers network trouble and server-side failures; the
	// request may be retried as-is.
	ErrTransient = errors.New("itinerary service unavailable")
)

// Client issues itinerary-generation requests.
type Client interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

// HTTPClient implements Client against the generation service's REST API.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient creates a generation service client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClient) Generate(ctx context.Context, genReq models.GenerationRequest) (*models.GenerationResult, error) {
	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := c.BaseURL + "/api/itinerary/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// fall through to decode
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, ErrPayloadRejected
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrAuthExpired
	default:
		return nil, fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	}

	var result models.GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}
	if result.ItineraryID == 0 {
		return nil, fmt.Errorf("generation response missing itinerary id")
	}
	return &result, nil
}
