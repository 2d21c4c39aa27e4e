// Package bridge talks to the optional local profile service. Every call is
// best-effort: a failure or timeout means "bridge unavailable", never an
// error surfaced to the user.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/utils"
)

// Bridge is a capability-checked optional dependency. Connect gates all
// subsequent calls; when it reports false, every other method degrades to
// its "unavailable" result.
type Bridge struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// New creates a bridge against baseURL (ex: "http://localhost:8546/api").
// The timeout bounds every request, health probe included.
func New(baseURL string, timeout time.Duration, log logger.Logger) *Bridge {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Bridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Connect probes the service's health endpoint. False means unavailable,
// whatever the underlying cause.
func (b *Bridge) Connect(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Debug("profile bridge unreachable", logger.Error(err))
		return false
	}
	defer utils.Close(resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Profiles lists the service's window profiles. An unavailable bridge
// yields an empty map.
func (b *Bridge) Profiles(ctx context.Context) map[string]json.RawMessage {
	if !b.Connect(ctx) {
		return map[string]json.RawMessage{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/profiles", nil)
	if err != nil {
		return map[string]json.RawMessage{}
	}
	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Debug("profile listing failed", logger.Error(err))
		return map[string]json.RawMessage{}
	}
	defer utils.Close(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return map[string]json.RawMessage{}
	}

	var body struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		b.log.Debug("profile listing malformed", logger.Error(err))
		return map[string]json.RawMessage{}
	}
	if body.Data == nil {
		return map[string]json.RawMessage{}
	}
	return body.Data
}

// Apply activates a named profile. False covers both "unavailable" and
// "service refused".
func (b *Bridge) Apply(ctx context.Context, name string) bool {
	if !b.Connect(ctx) {
		return false
	}

	url := fmt.Sprintf("%s/profiles/%s/apply", b.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return false
	}
	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Debug("profile apply failed", logger.String("profile", name), logger.Error(err))
		return false
	}
	defer utils.Close(resp.Body)
	return resp.StatusCode == http.StatusOK
}
