package wordclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/scry-drill/internal/config"
	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/redact"
)

// Endpoint paths of the grading service.
const (
	FetchPath  = "/api/words/get"
	SubmitPath = "/api/words/remember"

	// authCodeMarker in an error code means the session must re-authenticate.
	authCodeMarker = "EAUTH"

	maxResponseBytes = 1 << 20
)

// Client is the grading service as seen by the drill session.
type Client interface {
	// FetchBatch retrieves the next words to learn and to repeat.
	FetchBatch(ctx context.Context) (domain.Batch, error)

	// SubmitAnswers sends answers for grading and returns the verdict.
	SubmitAnswers(ctx context.Context, answers []domain.Answer) (domain.CommitResult, error)
}

// envelope is the response wrapper used by both endpoints.
type envelope[T any] struct {
	OK    bool       `json:"ok"`
	Data  T          `json:"data"`
	Error *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code string `json:"code"`
}

type submitRequest struct {
	Answers []domain.Answer `json:"answers"`
}

// HTTPClient implements Client over JSON-over-HTTP.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	cookie    string
	userAgent string
	logger    *slog.Logger
}

var _ Client = (*HTTPClient)(nil)

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. The configured timeout
// is not applied to a replaced client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// New creates a client for the service described by cfg.
func New(cfg config.BackendConfig, logger *slog.Logger, opts ...Option) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", redact.String(cfg.BaseURL))
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &HTTPClient{
		baseURL:   base,
		http:      &http.Client{Timeout: cfg.Timeout},
		cookie:    cfg.Cookie,
		userAgent: cfg.UserAgent,
		logger:    logger.With("component", "word_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchBatch implements Client.
func (c *HTTPClient) FetchBatch(ctx context.Context) (domain.Batch, error) {
	const op = "fetch batch"

	var env envelope[domain.Batch]
	if err := c.post(ctx, op, FetchPath, struct{}{}, &env); err != nil {
		return domain.Batch{}, err
	}
	if err := checkEnvelope(op, env.OK, env.Error); err != nil {
		return domain.Batch{}, err
	}

	batch := env.Data
	if batch.Learn == nil {
		batch.Learn = []domain.Word{}
	}
	if batch.Repeat == nil {
		batch.Repeat = []domain.Word{}
	}

	c.logger.DebugContext(ctx, "batch fetched",
		"learn_count", len(batch.Learn),
		"repeat_count", len(batch.Repeat))
	return batch, nil
}

// SubmitAnswers implements Client.
func (c *HTTPClient) SubmitAnswers(ctx context.Context, answers []domain.Answer) (domain.CommitResult, error) {
	const op = "submit answers"

	for _, a := range answers {
		if err := a.Validate(); err != nil {
			return domain.CommitResult{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if answers == nil {
		answers = []domain.Answer{}
	}

	var env envelope[domain.CommitResult]
	if err := c.post(ctx, op, SubmitPath, submitRequest{Answers: answers}, &env); err != nil {
		return domain.CommitResult{}, err
	}
	if err := checkEnvelope(op, env.OK, env.Error); err != nil {
		return domain.CommitResult{}, err
	}

	result := env.Data
	if result.Correct < 0 {
		return domain.CommitResult{}, &APIError{
			Op:  op,
			Err: fmt.Errorf("%w: negative correct count %d", ErrInvalidResponse, result.Correct),
		}
	}
	if result.Mistakes == nil {
		result.Mistakes = []domain.Mistake{}
	}

	c.logger.DebugContext(ctx, "answers graded",
		"answer_count", len(answers),
		"correct", result.Correct,
		"mistakes", len(result.Mistakes))
	return result, nil
}

// post sends body as JSON to path and decodes the JSON response into out.
func (c *HTTPClient) post(ctx context.Context, op, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: failed to encode request: %w", op, err)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed",
			"op", op,
			"path", path,
			"error", redact.Error(err))
		return &APIError{Op: op, Err: fmt.Errorf("%w: %w", ErrNetwork, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "response received",
		"op", op,
		"path", path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &APIError{Op: op, Err: fmt.Errorf("%w: HTTP %d", ErrAuth, resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{Op: op, Err: fmt.Errorf("%w: HTTP %d", ErrNetwork, resp.StatusCode)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("%w: malformed response: %w", ErrNetwork, err)}
	}
	return nil
}

// checkEnvelope maps an ok=false envelope to an error.
func checkEnvelope(op string, ok bool, apiErr *errorBody) error {
	if ok {
		return nil
	}
	code := ""
	if apiErr != nil {
		code = apiErr.Code
	}
	if strings.Contains(code, authCodeMarker) {
		return &APIError{Op: op, Code: code, Err: ErrAuth}
	}
	return &APIError{Op: op, Code: code, Err: ErrRejected}
}
