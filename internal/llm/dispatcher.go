package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"roleplay-chat/backend/internal/models"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/logger"
	"roleplay-chat/backend/pkg/observability"
)

// Dispatcher sends a prepared conversation to the selected provider and
// returns the extracted reply text. One request/response round trip per
// call: no retry, no client timeout, no streaming. A hung provider is only
// interrupted by the request context.
type Dispatcher struct {
	registry   *Registry
	httpClient *http.Client
	log        *logger.Logger
	metrics    *observability.Metrics
}

// NewDispatcher creates a dispatcher over the given provider registry
func NewDispatcher(registry *Registry, log *logger.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		httpClient: &http.Client{},
		log:        log,
		metrics:    metrics,
	}
}

// Dispatch resolves the provider kind, sends the conversation, and unwraps
// the reply. An unrecognized kind fails before any network call. A non-2xx
// answer fails with an UpstreamError carrying the numeric status.
func (d *Dispatcher) Dispatch(ctx context.Context, kind models.ProviderKind, settings models.ProviderSettings, messages []Message) (string, error) {
	provider, err := d.registry.Lookup(kind)
	if err != nil {
		return "", err
	}

	request, err := provider.BuildRequest(settings, messages)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, request.URL, bytes.NewReader(request.Body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header = request.Headers

	start := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.observe(kind, "transport_error", start)
		return "", apperrors.NewUpstreamError(0, fmt.Sprintf("provider unreachable: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		d.observe(kind, "transport_error", start)
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.observe(kind, "upstream_error", start)
		d.log.Warn("provider request failed",
			"provider", string(kind),
			"status", resp.StatusCode,
		)
		return "", apperrors.NewUpstreamError(resp.StatusCode, "provider request failed")
	}

	reply, err := provider.ExtractReply(body)
	if err != nil {
		d.observe(kind, "bad_payload", start)
		return "", err
	}

	d.observe(kind, "success", start)
	return reply, nil
}

func (d *Dispatcher) observe(kind models.ProviderKind, outcome string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.DispatchTotal.WithLabelValues(string(kind), outcome).Inc()
	d.metrics.DispatchLatency.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}
