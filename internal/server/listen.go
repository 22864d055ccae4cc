package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/shared"
)

// WaitForCallback runs a temporary loopback server on addr until the login
// redirect arrives or ctx expires. The server is torn down before returning.
func WaitForCallback(ctx context.Context, addr string, logger *log.Logger) (AuthCallback, error) {
	handler := NewCallbackHandler()
	router := NewBasicRouter()
	router.Use(RequestLogger(logger))
	router.Handler(handler)

	srv := &http.Server{Addr: addr, Handler: router}
	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("callback server shutdown failed", "error", err)
		}
	}()

	select {
	case cb := <-handler.Result():
		return cb, nil
	case err := <-errChan:
		return AuthCallback{}, err
	case <-ctx.Done():
		return AuthCallback{}, shared.ErrTimeout
	}
}
