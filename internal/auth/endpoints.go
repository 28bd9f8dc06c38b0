package auth

// Provider endpoints for the OAuth 2.0 flow. The corresponding config
// fields override them, which is how tests point the flow at local servers.
const (
	// DefaultAuthorizeEndpoint is the provider's authorization page.
	DefaultAuthorizeEndpoint = "https://twitter.com/i/oauth2/authorize"

	// DefaultTokenEndpoint is the provider's token endpoint, used for both
	// the code exchange and refreshes.
	DefaultTokenEndpoint = "https://api.twitter.com/2/oauth2/token"
)
