package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/config"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/errors"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store"
)

// Server holds the router and everything the endpoints need
type Server struct {
	store.Stores

	Router *mux.Router
	Config *config.Config
	Logger zerolog.Logger
}

// NewServer creates a server. Endpoints are mounted separately, see the
// endpoints package.
func NewServer(cfg *config.Config, stores *store.Stores, logger zerolog.Logger) *Server {
	s := &Server{
		Router: mux.NewRouter().UseEncodedPath(),
		Config: cfg,
		Logger: logger,
	}
	if stores != nil {
		s.Stores = *stores
	}
	return s
}

// Handler returns the router wrapped in request logging, access logging and
// panic recovery.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router
	h = middleware.RequestLogger(s.Logger)(h)
	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

// Start binds the configured address and serves in the background.
// The listener is bound before Start returns.
func (s *Server) Start() (*Handle, error) {
	ln, err := net.Listen("tcp", s.Config.ListenAddress())
	if err != nil {
		return nil, err
	}

	h := &Handle{
		srv: &http.Server{
			Handler:      s.Handler(),
			ReadTimeout:  s.Config.ReadTimeout(),
			WriteTimeout: s.Config.WriteTimeout(),
		},
		ln:   ln,
		done: make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		err := h.srv.Serve(ln)
		if !errors.Is(err, http.ErrServerClosed) {
			h.err = err
		}
	}()

	s.Logger.Info().Str("addr", ln.Addr().String()).Msg("server listening")
	return h, nil
}

// Handle controls a running server
type Handle struct {
	srv  *http.Server
	ln   net.Listener
	done chan struct{}
	err  error

	stopOnce sync.Once
	stopErr  error
}

// Addr returns the bound address, useful when the port was 0
func (h *Handle) Addr() net.Addr {
	return h.ln.Addr()
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// until ctx expires.
func (h *Handle) Stop(ctx context.Context) error {
	h.stopOnce.Do(func() {
		h.stopErr = h.srv.Shutdown(ctx)
	})
	return h.stopErr
}

// Wait blocks until the server stops and returns the serve error, if any
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}
