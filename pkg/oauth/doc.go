// Package oauth provides the OAuth 2.0 PKCE types and token endpoint
// client used by the chirp authorization flow.
//
// # Core Components
//
//   - Token: token set representation with margin-adjusted expiry
//   - PKCEChallenge: Proof Key for Code Exchange values (RFC 7636)
//   - Client: token endpoint client for code exchange and refresh
//   - TokenExchangeError: typed non-success token endpoint response
//
// # Usage
//
// The interactive login flow and the token store both build on this
// package; it performs the protocol steps and leaves storage, callback
// handling, and browser UI to internal/auth.
//
//	import "chirp/pkg/oauth"
//
//	pkce, err := oauth.GeneratePKCE()
//	state, err := oauth.GenerateState()
//
//	client := oauth.NewClient()
//	token, err := client.ExchangeCode(ctx, tokenEndpoint, code, redirectURI, clientID, pkce.CodeVerifier)
//
// Tokens carry their expiry as epoch seconds with a safety margin
// already subtracted, so a Token.Valid() check is a plain comparison
// and never needs to re-apply slack.
package oauth
