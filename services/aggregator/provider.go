package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"magnetar/models"
)

// searchResponse is the strict boundary schema for provider payloads. Any
// payload that does not decode into this shape counts as a malformed
// response and the provider contributes nothing.
type searchResponse struct {
	Results []models.RawResult `json:"results"`
}

// ProviderClient queries a single upstream search provider over its
// /api/search JSON contract.
type ProviderClient struct {
	source  models.ProviderSource
	client  *Client
	timeout time.Duration
}

// NewProviderClient constructs a client for one provider. A zero timeout
// falls back to 10 seconds.
func NewProviderClient(source models.ProviderSource, client *Client, timeout time.Duration) *ProviderClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProviderClient{source: source, client: client, timeout: timeout}
}

func (p *ProviderClient) Source() models.ProviderSource { return p.source }

// Search issues one GET against the provider and decodes its result list.
// Exactly one attempt is made per search request; the per-provider timeout
// bounds the call.
func (p *ProviderClient) Search(ctx context.Context, mediaType, query string) ([]models.RawResult, error) {
	endpoint := fmt.Sprintf("%s/api/search?type=%s&query=%s",
		strings.TrimRight(p.source.URL, "/"),
		url.QueryEscape(mediaType),
		url.QueryEscape(query))

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := p.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", p.source.Key, err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", p.source.Key, err)
	}
	return payload.Results, nil
}
