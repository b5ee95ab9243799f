package mcp

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/neboloop/nebo-contacts/internal/logging"
)

// NewHTTPHandler wraps the streamable HTTP handler. When token is non-empty,
// every request must carry it as a Bearer token.
func NewHTTPHandler(s *Server, token string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", authMiddleware(s.Handler(), token))
	return mux
}

// authMiddleware validates Bearer tokens. An empty token disables the check.
func authMiddleware(next http.Handler, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Debugf("[MCP] %s %s | Session: %q", r.Method, r.URL.Path, r.Header.Get("Mcp-Session-Id"))

		if token != "" {
			authHeader := r.Header.Get("Authorization")
			presented, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				writeUnauthorized(w)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="nebo-contacts"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// ServeHTTP listens on addr and serves MCP at /mcp until ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr, token string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(s, token),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("[MCP] %s %s listening on http://%s/mcp", s.name, s.version, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
