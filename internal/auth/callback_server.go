package auth

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	// DefaultCallbackPort is used when the redirect URI does not carry an
	// explicit port.
	DefaultCallbackPort = 8080

	// DefaultCallbackPath is used when the redirect URI has no path.
	DefaultCallbackPath = "/callback"
)

//go:embed templates/callback_success.html
var callbackSuccessHTML string

//go:embed templates/callback_error.html
var callbackErrorHTML string

// CallbackResult represents the result of an OAuth callback.
type CallbackResult struct {
	// Code is the authorization code from the OAuth provider.
	Code string

	// State is the state parameter to verify against the original request.
	State string

	// Error is the error code if the authorization failed.
	Error string

	// ErrorDescription is a human-readable error description.
	ErrorDescription string
}

// IsError returns true if the callback result represents an error.
func (r *CallbackResult) IsError() bool {
	return r.Error != ""
}

// CallbackServer is a temporary local HTTP server for receiving a single
// OAuth callback. It binds the loopback interface only, renders a
// confirmation page for every request on the callback path, and resolves
// the pending WaitForCallback exactly once. It applies no deadline of its
// own; the caller decides how long to wait through the context.
type CallbackServer struct {
	port        int
	path        string
	redirectURI string
	server      *http.Server
	listener    net.Listener
	resultCh    chan *CallbackResult
	errorCh     chan error
	resolveOnce sync.Once
	stopOnce    sync.Once
}

// NewCallbackServer creates a callback server from the configured
// redirect URI. The URI decides the port and path to serve; the bind
// address is always 127.0.0.1 regardless of the URI's host. The URI is
// later sent verbatim in the authorization request, so it must match
// what the OAuth client registration declares.
func NewCallbackServer(redirectURI string) (*CallbackServer, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI %q: %w", redirectURI, err)
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("redirect URI %q must use http for a loopback callback", redirectURI)
	}

	port := DefaultCallbackPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redirect URI port %q: %w", p, err)
		}
	}

	path := u.Path
	if path == "" || path == "/" {
		path = DefaultCallbackPath
	}

	return &CallbackServer{
		port:        port,
		path:        path,
		redirectURI: redirectURI,
		resultCh:    make(chan *CallbackResult, 1),
		errorCh:     make(chan error, 1),
	}, nil
}

// Start begins listening for the OAuth callback. The server stops itself
// when the context is cancelled, shortly after a callback arrives, or
// when Stop is called, whichever happens first.
// Returns the redirect URI to use in the OAuth authorization request.
func (s *CallbackServer) Start(ctx context.Context) (string, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback server on %s: %w", addr, err)
	}

	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port

	// Only the callback path is served; the mux answers 404 elsewhere.
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleCallback)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.errorCh <- err:
			default:
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return s.redirectURI, nil
}

// WaitForCallback blocks until the callback arrives, the server fails,
// or the context ends. The context is the only deadline; an expired or
// cancelled context returns its error.
func (s *CallbackServer) WaitForCallback(ctx context.Context) (*CallbackResult, error) {
	select {
	case result := <-s.resultCh:
		return result, nil
	case err := <-s.errorCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handleCallback handles a request on the callback path. The page is
// rendered on every hit so a reloaded tab still gets an answer, but only
// the first request resolves the pending wait.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	// Set security headers
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")

	query := r.URL.Query()
	result := &CallbackResult{
		Code:             query.Get("code"),
		State:            query.Get("state"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}

	var tmpl *template.Template
	var data interface{}

	if result.IsError() {
		tmpl = template.Must(template.New("error").Parse(callbackErrorHTML))
		data = map[string]string{
			"Error":       result.Error,
			"Description": result.ErrorDescription,
		}
	} else {
		tmpl = template.Must(template.New("success").Parse(callbackSuccessHTML))
		data = map[string]string{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}

	s.resolveOnce.Do(func() {
		// Buffered channel, guarded by the once: this never blocks.
		s.resultCh <- result

		// Shut down after the response has had time to flush.
		go func() {
			time.Sleep(1 * time.Second)
			s.Stop()
		}()
	})
}

// Stop shuts down the callback server. It is safe to call more than
// once and safe to call concurrently with an in-flight callback.
func (s *CallbackServer) Stop() {
	s.stopOnce.Do(func() {
		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.server.Shutdown(ctx)
		}
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}

// RedirectURI returns the redirect URI the server was built from.
func (s *CallbackServer) RedirectURI() string {
	return s.redirectURI
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	return s.port
}
