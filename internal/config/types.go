package config

import (
	"chirp/pkg/oauth1"
)

// Config is the top-level configuration structure for chirp.
type Config struct {
	// OAuth 1.0a user-context credentials. All four fields must be set for
	// chirp to sign requests itself; anything less selects the OAuth 2.0
	// browser flow instead.
	APIKey            string `yaml:"api_key,omitempty"`             // Consumer key from the developer portal
	APISecret         string `yaml:"api_secret,omitempty"`          // Consumer secret from the developer portal
	AccessToken       string `yaml:"access_token,omitempty"`        // User access token
	AccessTokenSecret string `yaml:"access_token_secret,omitempty"` // User access token secret

	// OAuth 2.0 public-client settings for the browser login flow.
	ClientID    string   `yaml:"client_id,omitempty"`    // OAuth 2.0 client ID (public client with PKCE)
	RedirectURI string   `yaml:"redirect_uri,omitempty"` // Registered loopback redirect URI (default: http://127.0.0.1:8080/callback)
	Scopes      []string `yaml:"scopes,omitempty"`       // Requested scopes (default: tweet.write users.read offline.access)

	// TokensPath overrides where the OAuth 2.0 token set is persisted
	// (default: <config dir>/tokens.json).
	TokensPath string `yaml:"tokens_path,omitempty"`

	// PostEveryHours is the posting cadence for chirp serve. Fractions are
	// allowed; the scheduler floors the interval at one minute.
	PostEveryHours float64 `yaml:"post_every_hours,omitempty"`

	Content ContentConfig `yaml:"content,omitempty"`
}

// ContentConfig defines how post text is generated.
type ContentConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty"`  // Whether to call the chat endpoint (default: false, built-in sentences only)
	Endpoint string `yaml:"endpoint,omitempty"` // OpenAI-compatible chat completions URL
	Model    string `yaml:"model,omitempty"`    // Model requested from the endpoint
	Prompt   string `yaml:"prompt,omitempty"`   // User prompt sent once per posting cycle
}

// OAuth1Credentials maps the credential fields onto the signer's type.
// Completeness is checked there, not here.
func (c Config) OAuth1Credentials() oauth1.Credentials {
	return oauth1.Credentials{
		ConsumerKey:       c.APIKey,
		ConsumerSecret:    c.APISecret,
		AccessToken:       c.AccessToken,
		AccessTokenSecret: c.AccessTokenSecret,
	}
}

// GetDefaultConfig returns the default configuration for chirp.
func GetDefaultConfig() Config {
	return Config{
		RedirectURI:    "http://127.0.0.1:8080/callback",
		Scopes:         []string{"tweet.write", "users.read", "offline.access"},
		PostEveryHours: 1,
		Content: ContentConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
			Prompt:   "Write one short, upbeat post about building software in public. Keep it under 240 characters and skip hashtags.",
		},
	}
}
