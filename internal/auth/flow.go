package auth

import (
	"context"
	"fmt"
	"strings"

	"chirp/pkg/logging"
	"chirp/pkg/oauth"
)

// LoginFlowConfig configures the interactive authorization code flow.
type LoginFlowConfig struct {
	// ClientID is the OAuth 2.0 client identifier.
	ClientID string

	// RedirectURI is the registered callback URI. It decides where the
	// local listener binds and is sent verbatim in both the
	// authorization request and the code exchange.
	RedirectURI string

	// Scopes are the OAuth scopes to request.
	Scopes []string

	// AuthorizeEndpoint is the provider's authorization URL.
	// Defaults to DefaultAuthorizeEndpoint.
	AuthorizeEndpoint string

	// TokenEndpoint is the provider's token URL.
	// Defaults to DefaultTokenEndpoint.
	TokenEndpoint string

	// Store receives the token set once the flow completes.
	Store *TokenStore

	// Client performs the code exchange. Defaults to oauth.NewClient().
	Client *oauth.Client

	// OpenBrowser controls whether the flow launches the system browser.
	// The authorization URL is always reported through OnAuthorizeURL,
	// so a headless user can open it elsewhere.
	OpenBrowser bool

	// OnAuthorizeURL is called with the authorization URL before the
	// flow starts waiting for the callback. Optional.
	OnAuthorizeURL func(url string)
}

// LoginFlow drives one OAuth 2.0 authorization code flow with PKCE:
// local callback listener, browser hand-off, state verification, code
// exchange, and persistence. The flow either completes fully or leaves
// the token store untouched.
type LoginFlow struct {
	cfg    LoginFlowConfig
	client *oauth.Client
}

// NewLoginFlow creates a login flow from the given configuration.
func NewLoginFlow(cfg LoginFlowConfig) (*LoginFlow, error) {
	if cfg.ClientID == "" {
		return nil, NewConfigurationError("client_id is required for an OAuth 2.0 login")
	}
	if cfg.RedirectURI == "" {
		return nil, NewConfigurationError("redirect_uri is required for an OAuth 2.0 login")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("login flow requires a token store")
	}

	if cfg.AuthorizeEndpoint == "" {
		cfg.AuthorizeEndpoint = DefaultAuthorizeEndpoint
	}
	if cfg.TokenEndpoint == "" {
		cfg.TokenEndpoint = DefaultTokenEndpoint
	}

	client := cfg.Client
	if client == nil {
		client = oauth.NewClient()
	}

	return &LoginFlow{cfg: cfg, client: client}, nil
}

// Run executes the flow and returns the saved token set. The context
// bounds the whole flow, including how long to wait for the user to
// finish in the browser; there is no other deadline.
func (f *LoginFlow) Run(ctx context.Context) (*oauth.Token, error) {
	pkce, err := oauth.GeneratePKCE()
	if err != nil {
		return nil, err
	}

	state, err := oauth.GenerateState()
	if err != nil {
		return nil, err
	}

	server, err := NewCallbackServer(f.cfg.RedirectURI)
	if err != nil {
		return nil, err
	}

	redirectURI, err := server.Start(ctx)
	if err != nil {
		return nil, err
	}
	defer server.Stop()

	authURL, err := f.client.BuildAuthorizationURL(
		f.cfg.AuthorizeEndpoint,
		f.cfg.ClientID,
		redirectURI,
		state,
		strings.Join(f.cfg.Scopes, " "),
		pkce,
	)
	if err != nil {
		return nil, err
	}

	if f.cfg.OnAuthorizeURL != nil {
		f.cfg.OnAuthorizeURL(authURL)
	}

	if f.cfg.OpenBrowser {
		if err := OpenBrowser(authURL); err != nil {
			// Not fatal: the URL has been reported and the user can
			// open it by hand.
			logging.Warn("Auth", "Could not open browser: %v", err)
		}
	}

	result, err := server.WaitForCallback(ctx)
	if err != nil {
		return nil, &AuthorizationFlowError{
			Stage:  StageCallback,
			Reason: "no authorization callback received",
			Err:    err,
		}
	}

	if result.IsError() {
		reason := result.Error
		if result.ErrorDescription != "" {
			reason += ": " + result.ErrorDescription
		}
		return nil, &AuthorizationFlowError{
			Stage:  StageCallback,
			Reason: "provider returned " + reason,
		}
	}

	if result.Code == "" {
		return nil, &AuthorizationFlowError{
			Stage:  StageCallback,
			Reason: "authorization response carried no code",
		}
	}

	// The state check runs before the code is ever sent to the token
	// endpoint. A mismatch means this callback did not answer our
	// request, and its code must not be exchanged.
	if result.State != state {
		return nil, &AuthorizationFlowError{
			Stage:  StageStateCheck,
			Reason: "state parameter mismatch, possible CSRF",
		}
	}

	token, err := f.client.ExchangeCode(ctx, f.cfg.TokenEndpoint, result.Code, redirectURI, f.cfg.ClientID, pkce.CodeVerifier)
	if err != nil {
		return nil, &AuthorizationFlowError{
			Stage:  StageExchange,
			Reason: "token endpoint rejected the authorization code",
			Err:    err,
		}
	}

	if err := f.cfg.Store.Save(token); err != nil {
		return nil, err
	}

	logging.Info("Auth", "Authorization complete, token set saved to %s", f.cfg.Store.Path())

	return token, nil
}
