package oauth

import (
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ExpiryMargin is subtracted from the issuer-reported token lifetime when
// ExpiresAt is computed, so a token reads as stale one minute before the
// issuer would actually reject it. This absorbs clock skew and the time a
// request spends in flight.
const ExpiryMargin = 60 * time.Second

// Token represents an OAuth 2.0 token set as persisted to disk. The JSON
// shape matches the token endpoint response plus the computed expires_at
// stamp, so the file stays readable next to the raw response.
type Token struct {
	// AccessToken is the bearer token used for authorization.
	AccessToken string `json:"access_token"`

	// TokenType is typically "bearer".
	TokenType string `json:"token_type,omitempty"`

	// RefreshToken is used to obtain new access tokens (optional).
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresIn is the token lifetime in seconds as reported by the
	// token endpoint. Informational once ExpiresAt has been computed.
	ExpiresIn int `json:"expires_in,omitempty"`

	// ExpiresAt is the margin-adjusted expiry as Unix epoch seconds.
	// Validity checks compare against this value only, never ExpiresIn.
	ExpiresAt int64 `json:"expires_at,omitempty"`

	// Scope is the granted scope(s), space-separated.
	Scope string `json:"scope,omitempty"`
}

// Valid reports whether the token can authorize a request right now: a
// non-empty access token whose margin-adjusted expiry is still ahead.
// A token that never had ExpiresAt computed is treated as expired.
func (t *Token) Valid() bool {
	return t.AccessToken != "" && time.Now().Unix() < t.ExpiresAt
}

// SetExpiresAtFromExpiresIn computes ExpiresAt from ExpiresIn with the
// expiry margin already applied. Called once, when a token endpoint
// response is decoded. A response without expires_in yields a stamp in
// the past, which forces a refresh on next use rather than trusting a
// token of unknown lifetime.
func (t *Token) SetExpiresAtFromExpiresIn() {
	t.ExpiresAt = time.Now().Unix() + int64(t.ExpiresIn) - int64(ExpiryMargin.Seconds())
}

// ExpiresAtTime returns ExpiresAt as a time.Time, zero if unset.
func (t *Token) ExpiresAtTime() time.Time {
	if t.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(t.ExpiresAt, 0)
}

// Scopes returns the scope as a slice of individual scopes.
func (t *Token) Scopes() []string {
	if t.Scope == "" {
		return nil
	}
	return strings.Fields(t.Scope)
}

// ToOAuth2Token converts the Token to an oauth2.Token so requests can be
// authorized through golang.org/x/oauth2 helpers.
func (t *Token) ToOAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAtTime(),
	}
}

// PKCEChallenge represents a PKCE (Proof Key for Code Exchange) challenge.
// PKCE prevents authorization code interception for public clients that
// cannot hold a client secret.
type PKCEChallenge struct {
	// CodeVerifier is the cryptographically random string (base64url-encoded).
	// This is kept secret and never transmitted to the authorization server
	// until the code exchange.
	CodeVerifier string

	// CodeChallenge is the SHA256 hash of the verifier (base64url-encoded).
	// This is sent in the authorization request.
	CodeChallenge string

	// CodeChallengeMethod is always "S256"; the plain method is never used.
	CodeChallengeMethod string
}
