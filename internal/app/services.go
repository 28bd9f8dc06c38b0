package app

import (
	"fmt"
	"path/filepath"

	"chirp/internal/auth"
	"chirp/internal/bot"
	"chirp/internal/config"
	"chirp/internal/content"
	"chirp/internal/poster"
	"chirp/pkg/logging"
)

// Services holds all initialized services used by the application.
//
// Initialization follows the dependency chain: the token store first (OAuth
// 2.0 refreshes need it), then the request authorizer, then the content
// provider, poster, and posting loop on top.
type Services struct {
	// Store persists the OAuth 2.0 token set.
	Store *auth.TokenStore

	// Authorizer stamps outgoing API requests for the selected auth mode.
	Authorizer auth.Authorizer

	// Provider generates post text.
	Provider content.Provider

	// Poster publishes posts.
	Poster *poster.Poster

	// Bot is the scheduled posting loop.
	Bot *bot.Bot
}

// InitializeServices creates and wires all services needed for posting.
//
// It fails with a *auth.ConfigurationError when neither a complete OAuth 1.0a
// credential set nor a persisted OAuth 2.0 token set is available; posting
// must not start without a way to authorize requests.
func InitializeServices(cfg *Config) (*Services, error) {
	chirpCfg := cfg.ChirpConfig

	store, err := NewTokenStore(chirpCfg, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token store: %w", err)
	}

	authorizer, err := auth.NewAuthorizer(chirpCfg.OAuth1Credentials(), store)
	if err != nil {
		return nil, err
	}

	provider := NewContentProvider(chirpCfg.Content)

	publisher, err := poster.New(authorizer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize poster: %w", err)
	}

	postingBot, err := bot.New(bot.Config{
		PostEveryHours: chirpCfg.PostEveryHours,
		Provider:       provider,
		Publisher:      publisher,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize posting loop: %w", err)
	}

	return &Services{
		Store:      store,
		Authorizer: authorizer,
		Provider:   provider,
		Poster:     publisher,
		Bot:        postingBot,
	}, nil
}

// NewTokenStore builds the token store from configuration. The tokens file
// is tokens_path when set, otherwise tokens.json next to config.yaml. The
// auth subcommands use this directly, without the posting stack.
func NewTokenStore(chirpCfg *config.Config, configPath string) (*auth.TokenStore, error) {
	path := chirpCfg.TokensPath
	if path == "" && configPath != "" {
		path = filepath.Join(configPath, auth.DefaultTokensFileName)
	}

	return auth.NewTokenStore(auth.TokenStoreConfig{
		Path:     path,
		ClientID: chirpCfg.ClientID,
	})
}

// NewContentProvider assembles the content provider: the chat provider with
// the built-in sentences as standby when enabled and usable, the built-in
// sentences alone otherwise.
func NewContentProvider(contentCfg config.ContentConfig) content.Provider {
	static := content.NewStaticProvider()

	if !contentCfg.Enabled {
		return static
	}

	chat, err := content.NewChatProvider(content.ChatConfig{
		Endpoint: contentCfg.Endpoint,
		Model:    contentCfg.Model,
		Prompt:   contentCfg.Prompt,
	})
	if err != nil {
		logging.Warn("Services", "Chat content provider unavailable, using built-in sentences: %s", err)
		return static
	}

	return &content.Fallback{Primary: chat, Standby: static}
}
