package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"chirp/pkg/logging"
)

const (
	// maxChatResponseBytes caps how much of the completion response is read.
	maxChatResponseBytes = 64 * 1024

	chatMaxTokens   = 120
	chatTemperature = 0.8

	// chatSystemPrompt frames every completion request.
	chatSystemPrompt = "You write a single short social media post. Reply with the post text only, no surrounding quotes."

	// DefaultChatTimeout bounds one completion request.
	DefaultChatTimeout = 30 * time.Second
)

// APIKeyEnvVar names the environment variable holding the chat API key.
// Keys never live in config files.
const APIKeyEnvVar = "OPENAI_API_KEY"

// ChatError is returned when the chat endpoint answers with a non-200 status.
type ChatError struct {
	StatusCode int
	Message    string
}

func (e *ChatError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chat completion failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, e.Message)
}

// ChatConfig configures a ChatProvider.
type ChatConfig struct {
	Endpoint string // OpenAI-compatible chat completions URL
	Model    string // model requested from the endpoint
	Prompt   string // user prompt sent once per request
	APIKey   string // taken from APIKeyEnvVar when empty
}

// ChatProvider asks an OpenAI-compatible chat completions endpoint for one
// post. One request per cycle, no retries; a Fallback standby covers failures.
type ChatProvider struct {
	cfg        ChatConfig
	httpClient *http.Client
}

// ChatOption configures a ChatProvider.
type ChatOption func(*ChatProvider)

// WithChatHTTPClient sets a custom HTTP client.
func WithChatHTTPClient(client *http.Client) ChatOption {
	return func(p *ChatProvider) {
		p.httpClient = client
	}
}

// NewChatProvider creates a chat-backed content provider.
func NewChatProvider(cfg ChatConfig, opts ...ChatOption) (*ChatProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("chat endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("chat model is required")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(APIKeyEnvVar)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chat API key is required, set %s", APIKeyEnvVar)
	}

	provider := &ChatProvider{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: DefaultChatTimeout,
		},
	}
	for _, opt := range opts {
		opt(provider)
	}
	return provider, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate requests one completion and returns the trimmed post text.
// An empty completion is an error.
func (p *ChatProvider) Generate(ctx context.Context) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: p.cfg.Prompt},
		},
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxChatResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Debug("Content", "Chat endpoint %s returned status %d", p.cfg.Endpoint, resp.StatusCode)
		return "", &ChatError{StatusCode: resp.StatusCode, Message: chatErrorMessage(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response carried no choices")
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("chat response carried an empty completion")
	}
	return text, nil
}

// chatErrorMessage pulls the error.message field OpenAI-style endpoints use,
// falling back to the raw body.
func chatErrorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}
