package oauth1

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

// Credentials, nonce, and timestamp from the worked HMAC-SHA1 example in
// the X (Twitter) API signing documentation, which publishes the expected
// signature for this exact request.
var docsCreds = Credentials{
	ConsumerKey:       "xvz1evFS4wEEPTGEFPHBog",
	ConsumerSecret:    "kAcSOqF21Fu85e7zjz7ZN2U4ZRhfV3WpwPAoE3Z7kBw",
	AccessToken:       "370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb",
	AccessTokenSecret: "LswwdoUaIvS8ltyTt5jkRh4J50vUPVVHtR2YPi5kE",
}

func docsSigner() *Signer {
	return NewSigner(docsCreds,
		WithNonceFunc(func() string { return "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg" }),
		WithClock(func() time.Time { return time.Unix(1318622958, 0) }),
	)
}

func TestAuthorizationHeader_KnownVector(t *testing.T) {
	requestURL := "https://api.twitter.com/1.1/statuses/update.json" +
		"?include_entities=true" +
		"&status=Hello%20Ladies%20%2B%20Gentlemen%2C%20a%20signed%20OAuth%20request%21"

	header, err := docsSigner().AuthorizationHeader(http.MethodPost, requestURL)
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}

	want := `OAuth oauth_consumer_key="xvz1evFS4wEEPTGEFPHBog", ` +
		`oauth_nonce="kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg", ` +
		`oauth_signature="tnnArxj06cWHq44gCs1OSKk%2FjLY%3D", ` +
		`oauth_signature_method="HMAC-SHA1", ` +
		`oauth_timestamp="1318622958", ` +
		`oauth_token="370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb", ` +
		`oauth_version="1.0"`

	if header != want {
		t.Errorf("AuthorizationHeader() =\n%s\nwant\n%s", header, want)
	}
}

func TestAuthorizationHeader_Deterministic(t *testing.T) {
	// With nonce and clock pinned, signing is a pure function of the
	// request and must reproduce byte for byte.
	url := "https://api.example.com/2/tweets?q=a"

	first, err := docsSigner().AuthorizationHeader(http.MethodPost, url)
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}
	second, err := docsSigner().AuthorizationHeader(http.MethodPost, url)
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}

	if first != second {
		t.Errorf("headers differ under pinned nonce and clock:\n%s\n%s", first, second)
	}
}

func TestAuthorizationHeader_FreshNoncePerCall(t *testing.T) {
	signer := NewSigner(docsCreds)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		header, err := signer.AuthorizationHeader(http.MethodGet, "https://api.example.com/resource")
		if err != nil {
			t.Fatalf("AuthorizationHeader() error = %v", err)
		}
		if seen[header] {
			t.Fatal("two calls produced an identical header, nonce is not fresh")
		}
		seen[header] = true
	}
}

func TestAuthorizationHeader_SignatureSensitivity(t *testing.T) {
	// Changing any input must change the signature.
	base := "https://api.example.com/2/tweets"

	reference, err := docsSigner().AuthorizationHeader(http.MethodPost, base)
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}

	tests := []struct {
		name   string
		method string
		url    string
		creds  Credentials
	}{
		{
			name:   "different method",
			method: http.MethodGet,
			url:    base,
			creds:  docsCreds,
		},
		{
			name:   "different URL",
			method: http.MethodPost,
			url:    base + "/other",
			creds:  docsCreds,
		},
		{
			name:   "extra query parameter",
			method: http.MethodPost,
			url:    base + "?extra=1",
			creds:  docsCreds,
		},
		{
			name:   "different token secret",
			method: http.MethodPost,
			url:    base,
			creds: Credentials{
				ConsumerKey:       docsCreds.ConsumerKey,
				ConsumerSecret:    docsCreds.ConsumerSecret,
				AccessToken:       docsCreds.AccessToken,
				AccessTokenSecret: "other-secret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer := NewSigner(tt.creds,
				WithNonceFunc(func() string { return "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg" }),
				WithClock(func() time.Time { return time.Unix(1318622958, 0) }),
			)
			header, err := signer.AuthorizationHeader(tt.method, tt.url)
			if err != nil {
				t.Fatalf("AuthorizationHeader() error = %v", err)
			}
			if header == reference {
				t.Error("signature did not change with the input")
			}
		})
	}
}

func TestAuthorizationHeader_Format(t *testing.T) {
	header, err := NewSigner(docsCreds).AuthorizationHeader(http.MethodPost, "https://api.example.com/2/tweets")
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}

	if !strings.HasPrefix(header, "OAuth ") {
		t.Fatalf("header = %q, want OAuth scheme prefix", header)
	}

	fields := strings.Split(strings.TrimPrefix(header, "OAuth "), ", ")
	if len(fields) != 7 {
		t.Fatalf("header has %d fields, want 7: %q", len(fields), header)
	}

	wantKeys := []string{
		"oauth_consumer_key",
		"oauth_nonce",
		"oauth_signature",
		"oauth_signature_method",
		"oauth_timestamp",
		"oauth_token",
		"oauth_version",
	}
	for i, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found {
			t.Fatalf("field %q is not key=value", field)
		}
		if key != wantKeys[i] {
			t.Errorf("field %d key = %q, want %q (keys must sort)", i, key, wantKeys[i])
		}
		if !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
			t.Errorf("field %d value %s is not double-quoted", i, value)
		}
	}
}

func TestAuthorizationHeader_BaseURLNormalization(t *testing.T) {
	// Default ports drop out of the signed base URL, so a request signed
	// with the port spelled out must match one signed without it.
	with, err := docsSigner().AuthorizationHeader(http.MethodGet, "https://api.example.com:443/path")
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}
	without, err := docsSigner().AuthorizationHeader(http.MethodGet, "https://api.example.com/path")
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}
	if with != without {
		t.Error("explicit :443 changed the signature")
	}

	// A non-default port stays significant.
	custom, err := docsSigner().AuthorizationHeader(http.MethodGet, "https://api.example.com:8443/path")
	if err != nil {
		t.Fatalf("AuthorizationHeader() error = %v", err)
	}
	if custom == without {
		t.Error("custom port did not change the signature")
	}
}

func TestAuthorizationHeader_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "unparseable", url: "https://api.example.com/%zz"},
		{name: "relative", url: "/2/tweets"},
		{name: "missing scheme", url: "api.example.com/2/tweets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSigner(docsCreds).AuthorizationHeader(http.MethodPost, tt.url)
			if err == nil {
				t.Errorf("AuthorizationHeader(%q) expected error", tt.url)
			}
		})
	}
}

func TestCredentials_Complete(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{
			name:  "all four set",
			creds: docsCreds,
			want:  true,
		},
		{
			name:  "empty",
			creds: Credentials{},
			want:  false,
		},
		{
			name: "missing consumer secret",
			creds: Credentials{
				ConsumerKey:       "ck",
				AccessToken:       "at",
				AccessTokenSecret: "as",
			},
			want: false,
		},
		{
			name: "missing access token secret",
			creds: Credentials{
				ConsumerKey:    "ck",
				ConsumerSecret: "cs",
				AccessToken:    "at",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
