// Package httpserve provides a local static file server for previewing a
// generated site. The published artifact needs no server; this exists so an
// operator can eyeball output before shipping it.
package httpserve

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vk/testgridgo/internal/ctxlog"
)

// Serve blocks serving dir on the given port until the server fails or the
// context is cancelled.
func Serve(ctx context.Context, dir string, port int) error {
	logger := ctxlog.FromContext(ctx)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Preview server listening.", "addr", srv.Addr, "dir", dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		srv.Close()
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
