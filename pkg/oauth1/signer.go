package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	signatureMethod = "HMAC-SHA1"
	oauthVersion    = "1.0"
)

// Credentials holds the four static values OAuth 1.0a signing needs.
// The consumer pair identifies the application, the access pair the
// account acting through it.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Complete reports whether all four credential fields are set. Signing
// with a partial set produces signatures the server will reject, so
// callers gate on this before constructing a Signer.
func (c Credentials) Complete() bool {
	return c.ConsumerKey != "" &&
		c.ConsumerSecret != "" &&
		c.AccessToken != "" &&
		c.AccessTokenSecret != ""
}

// Signer produces OAuth 1.0a Authorization headers for HTTP requests.
// It is safe for concurrent use.
type Signer struct {
	creds Credentials
	nonce func() string
	now   func() time.Time
}

// SignerOption configures a Signer
type SignerOption func(*Signer)

// WithNonceFunc overrides nonce generation. Tests use this to pin the
// oauth_nonce value; production code never should.
func WithNonceFunc(nonce func() string) SignerOption {
	return func(s *Signer) {
		s.nonce = nonce
	}
}

// WithClock overrides the timestamp source for oauth_timestamp.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

// NewSigner creates a Signer for the given credentials.
func NewSigner(creds Credentials, opts ...SignerOption) *Signer {
	s := &Signer{
		creds: creds,
		nonce: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AuthorizationHeader builds the Authorization header value for a single
// request. method is the HTTP method the request will use; rawURL is the
// full request URL including any query string. Each call draws a fresh
// nonce and timestamp, so two calls for the same request yield different
// headers and both verify.
func (s *Signer) AuthorizationHeader(method, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("request URL must be absolute, got %q", rawURL)
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.creds.ConsumerKey,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": signatureMethod,
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_token":            s.creds.AccessToken,
		"oauth_version":          oauthVersion,
	}

	signature := s.sign(method, u, oauthParams)

	headerParams := make(map[string]string, len(oauthParams)+1)
	for k, v := range oauthParams {
		headerParams[k] = v
	}
	headerParams["oauth_signature"] = signature

	keys := make([]string, 0, len(headerParams))
	for k := range headerParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("OAuth ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(PercentEncode(k))
		b.WriteString(`="`)
		b.WriteString(PercentEncode(headerParams[k]))
		b.WriteString(`"`)
	}

	return b.String(), nil
}

// encodedPair is a percent-encoded key/value parameter. Sorting happens
// on the encoded forms, as the signature base string requires.
type encodedPair struct {
	key   string
	value string
}

// sign computes the base64 HMAC-SHA1 signature over the request's
// signature base string.
func (s *Signer) sign(method string, u *url.URL, oauthParams map[string]string) string {
	pairs := make([]encodedPair, 0, len(oauthParams)+4)
	for k, v := range oauthParams {
		pairs = append(pairs, encodedPair{PercentEncode(k), PercentEncode(v)})
	}
	for k, values := range u.Query() {
		for _, v := range values {
			pairs = append(pairs, encodedPair{PercentEncode(k), PercentEncode(v)})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	var params strings.Builder
	for i, p := range pairs {
		if i > 0 {
			params.WriteByte('&')
		}
		params.WriteString(p.key)
		params.WriteByte('=')
		params.WriteString(p.value)
	}

	baseString := strings.ToUpper(method) +
		"&" + PercentEncode(baseURL(u)) +
		"&" + PercentEncode(params.String())

	signingKey := PercentEncode(s.creds.ConsumerSecret) + "&" + PercentEncode(s.creds.AccessTokenSecret)

	mac := hmac.New(sha1.New, []byte(signingKey))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// baseURL normalizes the request URL for signing: lowercase scheme and
// host, default ports dropped, query and fragment excluded.
func baseURL(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)

	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}

	return scheme + "://" + host + u.EscapedPath()
}
