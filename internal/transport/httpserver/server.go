package httpserver

import (
	"net/http"
	"time"

	"pantry-app-go/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
)

func New(cfg config.Config, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
	if cfg.HTTP.RequestTimeout > 0 {
		srv.WriteTimeout = cfg.HTTP.RequestTimeout + readHeaderTimeout
	}
	return srv
}
