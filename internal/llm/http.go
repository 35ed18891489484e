package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 120 * time.Second

// ClientOptions holds settings shared by all HTTP backends
type ClientOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   RetryPolicy
	// APILogger receives every request/response pair. Optional.
	APILogger APILogger
	Logger    *slog.Logger
}

// httpBackend does the JSON-over-HTTP round trip for a concrete client
type httpBackend struct {
	opts       ClientOptions
	httpClient *http.Client
	logger     *slog.Logger
}

func newHTTPBackend(opts ClientOptions, name string) httpBackend {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return httpBackend{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger.With("component", "gateway", "backend", name),
	}
}

// postJSON sends payload to path and decodes the answer into out, retrying
// according to the configured policy.
func (b httpBackend) postJSON(ctx context.Context, path string, payload any, out any) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	return b.opts.Retry.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		body, err := b.roundTrip(ctx, path, reqBody)
		if err != nil {
			b.log(payload, nil, err)
			b.logger.Warn("gateway request failed", "path", path, "error", err, "duration", time.Since(start))
			return err
		}

		if err := json.Unmarshal(body, out); err != nil {
			err = unavailable("unmarshaling response: %w", err)
			b.log(payload, nil, err)
			return err
		}

		b.log(payload, out, nil)
		b.logger.Debug("gateway request completed", "path", path, "duration", time.Since(start))
		return nil
	})
}

func (b httpBackend) roundTrip(ctx context.Context, path string, reqBody []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(b.opts.BaseURL, path), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if b.opts.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.opts.APIKey)
	}

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, unavailable("request cancelled: %w", ctx.Err())
		}
		return nil, unavailable("request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, unavailable("%w", &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)})
	}

	return body, nil
}

func (b httpBackend) log(req, resp any, err error) {
	if b.opts.APILogger != nil {
		b.opts.APILogger.LogInteraction(req, resp, err)
	}
}

// errorMessage extracts a readable message from an error body. Both OpenAI
// style {"error":{"message":..}} and Ollama style {"error":".."} are handled.
func errorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}

	return string(bytes.TrimSpace(body))
}
