package http

import (
	"context"
	"net/http"

	"github.com/sainaman-tech/storefront-backend/internal/cfg"
)

// Server — тонкая обёртка над http.Server с таймаутами из конфигурации.
type Server struct {
	srv *http.Server
}

func NewServer(handler http.Handler, httpCfg *cfg.HTTPConfig) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + httpCfg.Port,
			Handler:      handler,
			ReadTimeout:  httpCfg.ReadTimeout,
			WriteTimeout: httpCfg.WriteTimeout,
			IdleTimeout:  httpCfg.IdleTimeout,
		},
	}
}

// Run блокируется до остановки сервера.
func (s *Server) Run() error {
	return s.srv.ListenAndServe()
}

// Stop мягко останавливает сервер, дожидаясь активных запросов.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
