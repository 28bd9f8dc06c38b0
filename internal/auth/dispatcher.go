package auth

import (
	"context"
	"fmt"
	"net/http"

	"chirp/pkg/logging"
	"chirp/pkg/oauth1"
)

// Mode identifies the authorization strategy chirp runs with.
type Mode int

const (
	// ModeOAuth1 signs every request with the four static OAuth 1.0a
	// credentials. No token file is involved.
	ModeOAuth1 Mode = iota

	// ModeOAuth2 authorizes requests with a bearer token from the
	// token store, refreshing it when stale.
	ModeOAuth2
)

// String returns the human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeOAuth1:
		return "OAuth 1.0a"
	case ModeOAuth2:
		return "OAuth 2.0"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Authorizer attaches credentials to outgoing requests. The concrete
// strategy is fixed when the Authorizer is built and never changes for
// the life of the process.
type Authorizer interface {
	// Mode reports which strategy this Authorizer implements.
	Mode() Mode

	// Authorize sets the Authorization header on req. For OAuth 2.0
	// this may perform a token refresh; OAuth 1.0a never touches the
	// network.
	Authorize(ctx context.Context, req *http.Request) error
}

// NewAuthorizer selects the authorization mode from the configured
// credentials, once, at startup:
//
//   - All four OAuth 1.0a values present: OAuth 1.0a, unconditionally.
//     Whatever the token store holds is ignored.
//   - Anything less: OAuth 2.0, which requires a persisted token set.
//     Its absence is a ConfigurationError here, before any posting
//     attempt, rather than a failed request later.
func NewAuthorizer(creds oauth1.Credentials, store *TokenStore) (Authorizer, error) {
	if creds.Complete() {
		logging.Info("Auth", "Using OAuth 1.0a request signing")
		return &oauth1Authorizer{signer: oauth1.NewSigner(creds)}, nil
	}

	if partialOAuth1(creds) {
		logging.Warn("Auth", "Ignoring partial OAuth 1.0a credentials, falling back to OAuth 2.0")
	}

	if store == nil {
		return nil, NewConfigurationError("OAuth 2.0 mode requires a token store")
	}
	if !store.HasToken() {
		return nil, NewConfigurationError(
			"no OAuth 1.0a credentials and no stored token set at %s; configure api_key/api_secret/access_token/access_token_secret or run 'chirp auth login'",
			store.Path(),
		)
	}

	logging.Info("Auth", "Using OAuth 2.0 bearer tokens")
	return &oauth2Authorizer{store: store}, nil
}

// partialOAuth1 reports whether some but not all OAuth 1.0a fields are
// set, which is almost always a config mistake worth flagging.
func partialOAuth1(creds oauth1.Credentials) bool {
	any := creds.ConsumerKey != "" || creds.ConsumerSecret != "" ||
		creds.AccessToken != "" || creds.AccessTokenSecret != ""
	return any && !creds.Complete()
}

// oauth1Authorizer signs each request with HMAC-SHA1.
type oauth1Authorizer struct {
	signer *oauth1.Signer
}

func (a *oauth1Authorizer) Mode() Mode {
	return ModeOAuth1
}

func (a *oauth1Authorizer) Authorize(_ context.Context, req *http.Request) error {
	header, err := a.signer.AuthorizationHeader(req.Method, req.URL.String())
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}
	req.Header.Set("Authorization", header)
	return nil
}

// oauth2Authorizer attaches a bearer token from the store.
type oauth2Authorizer struct {
	store *TokenStore
}

func (a *oauth2Authorizer) Mode() Mode {
	return ModeOAuth2
}

func (a *oauth2Authorizer) Authorize(ctx context.Context, req *http.Request) error {
	token, err := a.store.Get(ctx)
	if err != nil {
		return err
	}
	token.ToOAuth2Token().SetAuthHeader(req)
	return nil
}
