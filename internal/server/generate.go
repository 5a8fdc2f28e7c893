// Package server provides the HTTP server for the lookup API.
//
// Construction is layered: Config carries the listen and policy
// settings, New wires a handlers.Service into a Server, and the
// router assembles the middleware chain around the endpoint handlers.
// Requests pass through recovery, logging, request ID stamping, then
// optional CORS and rate limiting before reaching a handler.
//
// A server runs until its context is canceled:
//
//	cfg := server.DefaultConfig()
//	cfg.Port = 8080
//
//	srv, err := server.New(client, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = srv.ListenAndServe(ctx)
package server

//go:generate gomarkdoc --output README.md .
