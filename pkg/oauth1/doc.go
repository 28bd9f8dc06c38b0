// Package oauth1 implements OAuth 1.0a HMAC-SHA1 request signing (RFC 5849)
// for APIs that still authorize requests with static consumer and access
// credentials instead of bearer tokens.
//
// # Core Components
//
//   - PercentEncode: the strict RFC 3986 percent-encoding the signature
//     base string requires (stricter than net/url's query escaping)
//   - Credentials: the four static fields a signed request needs
//   - Signer: builds the per-request Authorization header
//
// # Usage
//
//	import "chirp/pkg/oauth1"
//
//	signer := oauth1.NewSigner(oauth1.Credentials{
//	    ConsumerKey:       apiKey,
//	    ConsumerSecret:    apiSecret,
//	    AccessToken:       accessToken,
//	    AccessTokenSecret: accessTokenSecret,
//	})
//	header, err := signer.AuthorizationHeader(http.MethodPost, url)
//	req.Header.Set("Authorization", header)
//
// Signing is a pure function of the request, the credentials, and the
// per-call nonce and timestamp. The Signer performs no I/O and keeps no
// state between calls; each call draws a fresh nonce, which is the only
// replay defense the protocol offers.
package oauth1
