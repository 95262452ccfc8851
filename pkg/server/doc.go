// Package server provides the HTTP server for the SWAPI API.
//
// It uses gorilla/mux for routing and gorilla/handlers for access logging
// and panic recovery.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, stores, logger)
//	endpoints.RegisterAll(srv)
//	handle, err := srv.Start()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer handle.Stop(ctx)
//
// # Components
//
// The Server struct holds:
//
//   - Stores: one store per collection, the users store and the health store
//   - Router: HTTP request router
//   - Config: server configuration
//   - Logger: base logger, tagged per request with its id
//
// There is no global server instance; Start returns a Handle that owns the
// listener.
package server
