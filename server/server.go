// Package server assembles the HTTP surface on top of echo.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/internal/tutor"
	"github.com/notetutor/notetutor/plugin/vectorstore"
	apiv1 "github.com/notetutor/notetutor/server/router/api/v1"
	"github.com/notetutor/notetutor/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	httpServer *http.Server
}

func NewServer(profile *profile.Profile, st *store.Store, tutorService *tutor.Service, vs *vectorstore.Store) *Server {
	e := echo.New()
	e.Use(requestLogger)

	apiv1.NewAPIV1Service(profile, st, tutorService, vs).Register(e)

	return &Server{
		Profile:    profile,
		Store:      st,
		echoServer: e,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", profile.Addr, profile.Port),
			Handler:           e,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("server started", "addr", s.httpServer.Addr, "mode", s.Profile.Mode)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "err", err)
	}
	slog.Info("server shut down")
	return nil
}

// requestLogger logs one line per request in the structured style used
// throughout the codebase.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		start := time.Now()
		err := next(c)
		attrs := []any{
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"duration", time.Since(start),
		}
		if err != nil {
			slog.Warn("request failed", append(attrs, "err", err)...)
		} else {
			slog.Info("request", attrs...)
		}
		return err
	}
}
