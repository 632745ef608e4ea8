package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	callbackPath = "/cb"

	// How long the login flow waits for the browser redirect.
	CallbackTimeout = 180 * time.Second
)

// ErrCallbackTimeout is returned when no redirect arrives within
// CallbackTimeout. Distinct from an explicit error reported by the provider.
var ErrCallbackTimeout = errors.New("authentication timed out")

// CallbackResult is the outcome of the authorization redirect. Exactly one
// of Code and Err is set.
type CallbackResult struct {
	Code string
	Err  string
}

// CallbackServer is a short-lived loopback HTTP server that captures a
// single authorization redirect on /cb. The first meaningful callback wins;
// the result is handed to the waiting login flow over a one-shot channel.
type CallbackServer struct {
	expectedState string

	listener net.Listener
	server   *http.Server
	resultCh chan CallbackResult
	once     sync.Once
}

func NewCallbackServer(expectedState string) *CallbackServer {
	return &CallbackServer{
		expectedState: expectedState,
		resultCh:      make(chan CallbackResult, 1),
	}
}

// Start binds an ephemeral loopback port and begins serving in the
// background. It returns the bound port immediately.
func (s *CallbackServer) Start() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to start callback server: %w", err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, s.handleCallback)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Debugf("callback server stopped: %v", err)
		}
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	log.Debugf("callback server listening on 127.0.0.1:%d", port)
	return port, nil
}

// RedirectURI returns the redirect URI for a server bound to port. It must
// match byte for byte between the authorization request and the code
// exchange.
func RedirectURI(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", port, callbackPath)
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")
	errParam := query.Get("error")

	if errParam != "" {
		s.deliver(CallbackResult{Err: errParam})
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "<html><body><h3>Authentication failed</h3><p>%s</p></body></html>", html.EscapeString(errParam))
		return
	}

	if code == "" || state != s.expectedState {
		s.deliver(CallbackResult{Err: "invalid state or missing code"})
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.deliver(CallbackResult{Code: code})
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "<html><body><h3>Login complete!</h3><p>You can close this tab.</p></body></html>")
}

// deliver records the first meaningful result. Later callbacks are served
// their HTTP response but do not change the outcome.
func (s *CallbackServer) deliver(result CallbackResult) {
	s.once.Do(func() {
		s.resultCh <- result
	})
}

// Wait blocks until a callback result arrives, the timeout elapses, or ctx
// is cancelled. Timeout and provider errors are reported distinctly.
func (s *CallbackServer) Wait(ctx context.Context) (CallbackResult, error) {
	select {
	case result := <-s.resultCh:
		return result, nil
	case <-time.After(CallbackTimeout):
		return CallbackResult{}, ErrCallbackTimeout
	case <-ctx.Done():
		return CallbackResult{}, ctx.Err()
	}
}

// Shutdown terminates the background server. Safe to call even if no
// request was ever served.
func (s *CallbackServer) Shutdown() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.Debugf("callback server shutdown: %v", err)
	}
}
