package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chirp/internal/auth"
	"chirp/pkg/logging"
)

const (
	// DefaultPostEndpoint is where new posts are created.
	DefaultPostEndpoint = "https://api.twitter.com/2/tweets"

	// DefaultHTTPTimeout bounds one posting request.
	DefaultHTTPTimeout = 30 * time.Second

	// maxResponseBytes caps how much of the API response is read.
	maxResponseBytes = 64 * 1024
)

// PostingError is returned when the API answers with a non-success status.
// The scheduling loop logs it and keeps running.
type PostingError struct {
	StatusCode int
	Body       string
}

func (e *PostingError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("posting failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("posting failed with status %d: %s", e.StatusCode, e.Body)
}

// PostResult is the decoded success response.
type PostResult struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Poster publishes posts, authorized by the injected Authorizer.
type Poster struct {
	endpoint   string
	authorizer auth.Authorizer
	httpClient *http.Client
}

// Option configures a Poster.
type Option func(*Poster)

// WithEndpoint overrides the posting endpoint.
func WithEndpoint(endpoint string) Option {
	return func(p *Poster) {
		p.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Poster) {
		p.httpClient = client
	}
}

// New creates a Poster using the given request authorizer.
func New(authorizer auth.Authorizer, opts ...Option) (*Poster, error) {
	if authorizer == nil {
		return nil, fmt.Errorf("authorizer is required")
	}

	p := &Poster{
		endpoint:   DefaultPostEndpoint,
		authorizer: authorizer,
		httpClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Post publishes text and returns the decoded result. HTTP 200 and 201 both
// count as success; anything else is a *PostingError.
func (p *Poster) Post(ctx context.Context, text string) (*PostResult, error) {
	if text == "" {
		return nil, fmt.Errorf("post text is empty")
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := p.authorizer.Authorize(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to authorize post request: %w", err)
	}

	logging.Debug("Poster", "Posting via %s using %s", p.endpoint, p.authorizer.Mode())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read post response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &PostingError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result PostResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode post response: %w", err)
	}
	return &result, nil
}
