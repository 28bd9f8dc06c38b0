package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"chirp/pkg/logging"
	"chirp/pkg/oauth"
)

// DefaultTokensFileName is the name of the persisted token set file.
const DefaultTokensFileName = "tokens.json"

// DefaultTokensPath returns the default tokens file location,
// ~/.config/chirp/tokens.json.
func DefaultTokensPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "chirp", DefaultTokensFileName), nil
}

// TokenStoreConfig configures the token store.
type TokenStoreConfig struct {
	// Path is the tokens file location.
	// Defaults to ~/.config/chirp/tokens.json.
	Path string

	// TokenEndpoint is the OAuth token endpoint used for refreshes.
	// Defaults to DefaultTokenEndpoint.
	TokenEndpoint string

	// ClientID identifies this application at the token endpoint.
	ClientID string

	// Client performs token endpoint requests.
	// Defaults to oauth.NewClient().
	Client *oauth.Client
}

// TokenStore owns the persisted OAuth 2.0 token set.
//
// SECURITY: This store handles sensitive OAuth credentials. The following
// measures are implemented:
//   - The tokens file is written with 0600 permissions (owner read/write only)
//   - Its directory is created with 0700 permissions (owner only)
//   - Token values are NEVER logged (only paths and expiry times)
//   - Writes are atomic (temp file + rename), so the file is never truncated
//
// Get hands out the stored access token while it is valid and performs
// exactly one refresh when it is not, even under concurrent callers.
// Save is the only path that writes the file.
type TokenStore struct {
	mu     sync.RWMutex
	path   string
	token  *oauth.Token // cache of the persisted set; nil when absent
	loaded bool

	tokenEndpoint string
	clientID      string
	client        *oauth.Client

	// refreshGroup deduplicates concurrent refreshes of the single
	// token set.
	refreshGroup singleflight.Group
}

// NewTokenStore creates a token store with the specified configuration.
func NewTokenStore(cfg TokenStoreConfig) (*TokenStore, error) {
	path := cfg.Path
	if path == "" {
		var err error
		path, err = DefaultTokensPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create token storage directory: %w", err)
	}

	tokenEndpoint := cfg.TokenEndpoint
	if tokenEndpoint == "" {
		tokenEndpoint = DefaultTokenEndpoint
	}

	client := cfg.Client
	if client == nil {
		client = oauth.NewClient()
	}

	return &TokenStore{
		path:          path,
		tokenEndpoint: tokenEndpoint,
		clientID:      cfg.ClientID,
		client:        client,
	}, nil
}

// Path returns the tokens file location.
func (s *TokenStore) Path() string {
	return s.path
}

// HasToken reports whether a persisted token set exists, stale or not.
// Staleness is the refresh path's problem; this only answers whether a
// login has ever completed.
func (s *TokenStore) HasToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return false
	}
	return s.token != nil && s.token.AccessToken != ""
}

// Peek returns the stored token set without validity checks or network
// activity, or nil when none is persisted. For status display only;
// request authorization goes through Get.
func (s *TokenStore) Peek() *oauth.Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil || s.token == nil {
		return nil
	}
	tok := *s.token
	return &tok
}

// Get returns a token that can authorize a request right now. A valid
// stored token is returned without any network activity. A stale one
// triggers exactly one refresh, whose result is persisted and shared
// with every concurrent caller.
func (s *TokenStore) Get(ctx context.Context) (*oauth.Token, error) {
	s.mu.Lock()
	if err := s.loadLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.token != nil && s.token.Valid() {
		tok := *s.token
		s.mu.Unlock()
		return &tok, nil
	}
	s.mu.Unlock()

	result, err, _ := s.refreshGroup.Do("refresh", func() (interface{}, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	tok := *(result.(*oauth.Token))
	return &tok, nil
}

// refresh exchanges the stored refresh token for a fresh access token
// and persists the result. Runs inside the singleflight group.
func (s *TokenStore) refresh(ctx context.Context) (*oauth.Token, error) {
	s.mu.Lock()
	// Re-check under the lock: a caller queued behind a finished
	// refresh should use its result instead of refreshing again.
	if s.token != nil && s.token.Valid() {
		tok := *s.token
		s.mu.Unlock()
		return &tok, nil
	}
	if s.token == nil || s.token.AccessToken == "" {
		s.mu.Unlock()
		return nil, NewConfigurationError("no token set stored at %s; run 'chirp auth login' first", s.path)
	}
	prev := *s.token
	s.mu.Unlock()

	if prev.RefreshToken == "" {
		return nil, NewConfigurationError("stored token set is expired and has no refresh token; run 'chirp auth login' again")
	}

	logging.Debug("TokenStore", "Access token stale, refreshing")

	fresh, err := s.client.Refresh(ctx, s.tokenEndpoint, prev.RefreshToken, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}

	// Some providers rotate the refresh token on every grant, others
	// omit it from refresh responses. Carry the previous one forward
	// so the refresh after this one still has something to send.
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = prev.RefreshToken
	}

	if err := s.Save(fresh); err != nil {
		return nil, err
	}

	logging.Info("TokenStore", "Access token refreshed, valid until %s",
		fresh.ExpiresAtTime().Format(time.RFC3339))

	tok := *fresh
	return &tok, nil
}

// Save persists a token set, replacing any previous one. This is the
// only path that writes the tokens file. The data goes through a temp
// file and an atomic rename so a crash mid-write never leaves a
// truncated file where the token set used to be.
func (s *TokenStore) Save(token *oauth.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("refusing to save an empty token set")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token set: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write tokens file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace tokens file: %w", err)
	}

	tok := *token
	s.token = &tok
	s.loaded = true

	logging.Debug("TokenStore", "Token set persisted to %s", s.path)
	return nil
}

// Clear removes the persisted token set, if any.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	s.loaded = true

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// loadLocked populates the cache from disk once. A missing file is not
// an error, it just means no login has happened yet. Requires s.mu.
func (s *TokenStore) loadLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.token = nil
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read tokens file: %w", err)
	}

	var token oauth.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("failed to parse tokens file %s: %w", s.path, err)
	}

	s.token = &token
	s.loaded = true
	return nil
}
