package workers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// HTTPServerWorker serves the API until the context is canceled, then drains open requests.
type HTTPServerWorker struct {
	log             *slog.Logger
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
}

func NewHTTPServerWorker(log *slog.Logger, addr string, handler http.Handler, shutdownTimeout time.Duration) *HTTPServerWorker {
	return &HTTPServerWorker{log: log, addr: addr, handler: handler, shutdownTimeout: shutdownTimeout}
}

// Run builds a fresh http.Server on every call so the supervisor can restart it after a listen failure.
func (w *HTTPServerWorker) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              w.addr,
		Handler:           w.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		w.log.Info("HTTP server listening", "addr", w.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		w.log.Warn("HTTP server shutdown incomplete", "error", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	w.log.Info("HTTP server stopped")
	return nil
}
