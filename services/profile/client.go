package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"voyago/models"
)

// Client resolves the signed-in user's travel profile from the profile service.
type Client interface {
	// FetchByUserID returns the user's profile, or (nil, nil) when the user
	// has not created one yet.
	FetchByUserID(ctx context.Context, userID string) (*models.TravelerProfile, error)
}

// HTTPClient implements Client against the profile service's REST API.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient creates a profile service client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) FetchByUserID(ctx context.Context, userID string) (*models.TravelerProfile, error) {
	url := fmt.Sprintf("%s/api/profiles/user/%s", c.BaseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// The user exists but never created a travel profile.
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("profile service returned status %d", resp.StatusCode)
	}

	var prof models.TravelerProfile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return &prof, nil
}
