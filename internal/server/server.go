// Package server hosts the droll HTTP API: roll execution, roll history,
// and a websocket feed that broadcasts every resolved roll.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/erikjuhani/droll/internal/history"
	historysqlite "github.com/erikjuhani/droll/internal/history/sqlite"
	"github.com/erikjuhani/droll/internal/notation"
	"github.com/erikjuhani/droll/internal/roller"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/websocket"
)

const shutdownTimeout = 5 * time.Second

// Config holds server configuration.
type Config struct {
	Addr     string
	DBPath   string
	HMACKey  string // hex-encoded; empty disables API auth
	Issuer   string
	Audience string
}

// Server hosts the droll roll service.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      history.Store
	storeClose func() error
	hub        *feedHub
	source     notation.Source
	verifier   *tokenVerifier
	tracer     trace.Tracer
}

// New creates a configured server listening on cfg.Addr.
func New(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	store, err := historysqlite.Open(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	var verifier *tokenVerifier
	if cfg.HMACKey != "" {
		verifier, err = newTokenVerifier(cfg.HMACKey, cfg.Issuer, cfg.Audience)
		if err != nil {
			_ = listener.Close()
			_ = store.Close()
			return nil, err
		}
	}

	s := &Server{
		listener:   listener,
		store:      store,
		storeClose: store.Close,
		hub:        newFeedHub(),
		source:     roller.Default(),
		verifier:   verifier,
		tracer:     otel.Tracer("droll/server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/roll", s.requireAuth(s.handleRoll))
	mux.HandleFunc("/rolls", s.handleListRolls)
	mux.HandleFunc("/rolls/", s.handleGetRoll)
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/ws", websocket.Handler(s.handleWS))

	s.httpServer = &http.Server{Handler: mux}
	return s, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Handler exposes the route table for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves requests until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Printf("droll server listening on %s", s.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return s.close()
	case err := <-errChan:
		_ = s.close()
		return fmt.Errorf("serve: %w", err)
	}
}

func (s *Server) close() error {
	if s.storeClose == nil {
		return nil
	}
	return s.storeClose()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
