// Package auth owns everything between chirp's configuration and an
// authorized HTTP request: credential-based mode selection, the
// interactive OAuth 2.0 login flow, and the persisted token set.
//
// # Components
//
//   - Authorizer: the per-process authorization strategy, selected once
//     by NewAuthorizer from the configured credentials
//   - TokenStore: the tokens.json owner; serves valid access tokens and
//     refreshes stale ones exactly once per staleness
//   - LoginFlow: the browser-based authorization code flow with PKCE
//   - CallbackServer: the one-shot local listener the flow parks on
//
// # Mode selection
//
// When all four OAuth 1.0a credentials are configured, requests are
// signed per request and the token store is never touched. Otherwise
// chirp runs as an OAuth 2.0 public client and a persisted token set
// must already exist; its absence is a configuration error raised
// before any posting is attempted, not a prompt to start a login.
//
// # Errors
//
// ConfigurationError and AuthorizationFlowError are this package's two
// failure families. They are matched with errors.As in cmd to pick
// exit codes, so wrapping them is fine, replacing them is not.
package auth
