package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with defaults", func(t *testing.T) {
		c := NewClient()
		if c.httpClient == nil {
			t.Error("expected httpClient to be set")
		}
		if c.httpClient.Timeout != DefaultHTTPTimeout {
			t.Errorf("expected timeout %v, got %v", DefaultHTTPTimeout, c.httpClient.Timeout)
		}
		if c.logger == nil {
			t.Error("expected logger to be set")
		}
	})

	t.Run("applies options", func(t *testing.T) {
		customHTTP := &http.Client{Timeout: 10 * time.Second}

		c := NewClient(WithHTTPClient(customHTTP))

		if c.httpClient != customHTTP {
			t.Error("expected custom httpClient to be set")
		}
	})
}

func TestExchangeCode(t *testing.T) {
	t.Run("exchanges code for token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/token" {
				t.Errorf("expected /token path, got %s", r.URL.Path)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				t.Errorf("expected form content type, got %s", ct)
			}

			err := r.ParseForm()
			if err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}

			if r.Form.Get("grant_type") != "authorization_code" {
				t.Errorf("expected grant_type authorization_code, got %s", r.Form.Get("grant_type"))
			}
			if r.Form.Get("code") != "auth-code" {
				t.Errorf("expected code auth-code, got %s", r.Form.Get("code"))
			}
			if r.Form.Get("redirect_uri") != "http://127.0.0.1:8080/callback" {
				t.Errorf("expected redirect_uri, got %s", r.Form.Get("redirect_uri"))
			}
			if r.Form.Get("client_id") != "test-client" {
				t.Errorf("expected client_id test-client, got %s", r.Form.Get("client_id"))
			}
			if r.Form.Get("code_verifier") != "verifier123" {
				t.Errorf("expected code_verifier verifier123, got %s", r.Form.Get("code_verifier"))
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "access-token-123",
				"refresh_token": "refresh-token-456",
				"token_type":    "bearer",
				"expires_in":    7200,
			})
		}))
		defer server.Close()

		before := time.Now().Unix()
		c := NewClient(WithHTTPClient(server.Client()))
		token, err := c.ExchangeCode(
			context.Background(),
			server.URL+"/token",
			"auth-code",
			"http://127.0.0.1:8080/callback",
			"test-client",
			"verifier123",
		)
		after := time.Now().Unix()

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.AccessToken != "access-token-123" {
			t.Errorf("expected access token access-token-123, got %s", token.AccessToken)
		}
		if token.RefreshToken != "refresh-token-456" {
			t.Errorf("expected refresh token refresh-token-456, got %s", token.RefreshToken)
		}

		// ExpiresAt must carry the one minute margin, not the raw lifetime
		wantLow := before + 7200 - 60
		wantHigh := after + 7200 - 60
		if token.ExpiresAt < wantLow || token.ExpiresAt > wantHigh {
			t.Errorf("ExpiresAt = %d, want within [%d, %d]", token.ExpiresAt, wantLow, wantHigh)
		}
	})

	t.Run("returns typed error on failed request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_grant"}`))
		}))
		defer server.Close()

		c := NewClient(WithHTTPClient(server.Client()))
		_, err := c.ExchangeCode(
			context.Background(),
			server.URL+"/token",
			"invalid-code",
			"http://127.0.0.1:8080/callback",
			"test-client",
			"verifier123",
		)

		if err == nil {
			t.Fatal("expected error for failed request")
		}

		var exchangeErr *TokenExchangeError
		if !errors.As(err, &exchangeErr) {
			t.Fatalf("expected *TokenExchangeError, got %T: %v", err, err)
		}
		if exchangeErr.StatusCode != http.StatusBadRequest {
			t.Errorf("StatusCode = %d, want %d", exchangeErr.StatusCode, http.StatusBadRequest)
		}
		if !strings.Contains(exchangeErr.Body, "invalid_grant") {
			t.Errorf("Body = %q, want the server's error payload", exchangeErr.Body)
		}
	})

	t.Run("missing expires_in yields already stale token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "access-token-123",
				"token_type":   "bearer",
			})
		}))
		defer server.Close()

		c := NewClient(WithHTTPClient(server.Client()))
		token, err := c.ExchangeCode(
			context.Background(),
			server.URL+"/token",
			"auth-code",
			"http://127.0.0.1:8080/callback",
			"test-client",
			"verifier123",
		)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.Valid() {
			t.Error("token without expires_in should not validate")
		}
	})
}

func TestRefresh(t *testing.T) {
	t.Run("refreshes token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := r.ParseForm()
			if err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}

			if r.Form.Get("grant_type") != "refresh_token" {
				t.Errorf("expected grant_type refresh_token, got %s", r.Form.Get("grant_type"))
			}
			if r.Form.Get("refresh_token") != "old-refresh-token" {
				t.Errorf("expected refresh_token, got %s", r.Form.Get("refresh_token"))
			}
			if r.Form.Get("client_id") != "test-client" {
				t.Errorf("expected client_id test-client, got %s", r.Form.Get("client_id"))
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "new-access-token",
				"refresh_token": "new-refresh-token",
				"token_type":    "bearer",
				"expires_in":    7200,
			})
		}))
		defer server.Close()

		c := NewClient(WithHTTPClient(server.Client()))
		token, err := c.Refresh(
			context.Background(),
			server.URL+"/token",
			"old-refresh-token",
			"test-client",
		)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.AccessToken != "new-access-token" {
			t.Errorf("expected access token new-access-token, got %s", token.AccessToken)
		}
		if !token.Valid() {
			t.Error("freshly refreshed token should validate")
		}
	})

	t.Run("returns typed error on failed refresh", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid_grant"}`))
		}))
		defer server.Close()

		c := NewClient(WithHTTPClient(server.Client()))
		_, err := c.Refresh(
			context.Background(),
			server.URL+"/token",
			"expired-refresh-token",
			"test-client",
		)

		var exchangeErr *TokenExchangeError
		if !errors.As(err, &exchangeErr) {
			t.Fatalf("expected *TokenExchangeError, got %T: %v", err, err)
		}
		if exchangeErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("StatusCode = %d, want %d", exchangeErr.StatusCode, http.StatusUnauthorized)
		}
	})
}

func TestBuildAuthorizationURL(t *testing.T) {
	c := NewClient()

	t.Run("builds URL with all parameters", func(t *testing.T) {
		pkce := &PKCEChallenge{
			CodeChallenge:       "challenge123",
			CodeChallengeMethod: "S256",
		}

		url, err := c.BuildAuthorizationURL(
			"https://auth.example.com/authorize",
			"test-client",
			"http://127.0.0.1:8080/callback",
			"state123",
			"tweet.write users.read offline.access",
			pkce,
		)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Verify URL contains expected parameters
		expectedParams := []string{
			"response_type=code",
			"client_id=test-client",
			"redirect_uri=http%3A%2F%2F127.0.0.1%3A8080%2Fcallback",
			"state=state123",
			"scope=tweet.write+users.read+offline.access",
			"code_challenge=challenge123",
			"code_challenge_method=S256",
		}

		for _, param := range expectedParams {
			if !strings.Contains(url, param) {
				t.Errorf("expected URL to contain %s, got %s", param, url)
			}
		}
	})

	t.Run("builds URL without PKCE", func(t *testing.T) {
		url, err := c.BuildAuthorizationURL(
			"https://auth.example.com/authorize",
			"test-client",
			"http://127.0.0.1:8080/callback",
			"state123",
			"tweet.write",
			nil, // no PKCE
		)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Should not contain PKCE parameters
		if strings.Contains(url, "code_challenge") {
			t.Errorf("expected URL to not contain code_challenge, got %s", url)
		}
	})

	t.Run("builds URL without scope", func(t *testing.T) {
		url, err := c.BuildAuthorizationURL(
			"https://auth.example.com/authorize",
			"test-client",
			"http://127.0.0.1:8080/callback",
			"state123",
			"", // no scope
			nil,
		)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Should not contain scope parameter
		if strings.Contains(url, "scope=") {
			t.Errorf("expected URL to not contain scope, got %s", url)
		}
	})

	t.Run("returns error for invalid URL", func(t *testing.T) {
		_, err := c.BuildAuthorizationURL(
			"://invalid-url",
			"test-client",
			"http://127.0.0.1:8080/callback",
			"state123",
			"tweet.write",
			nil,
		)

		if err == nil {
			t.Error("expected error for invalid URL")
		}
	})
}

func TestTokenExchangeError_Error(t *testing.T) {
	withBody := &TokenExchangeError{StatusCode: 400, Body: `{"error":"invalid_request"}`}
	if !strings.Contains(withBody.Error(), "400") || !strings.Contains(withBody.Error(), "invalid_request") {
		t.Errorf("Error() = %q, want status and body", withBody.Error())
	}

	noBody := &TokenExchangeError{StatusCode: 503}
	if !strings.Contains(noBody.Error(), "503") {
		t.Errorf("Error() = %q, want status", noBody.Error())
	}
}
