package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/marben/mandel_explorer/internal/engine"
)

// webServer initializes the websocket endpoint and returns net.Listener accepting websocket connections
func webServer(ctx context.Context, addr string, host *engine.Host) (net.Listener, *http.Server) {
	l := engine.NewWebsocketListener(ctx, addr+"/ws")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", l.Handler("*"))
	mux.HandleFunc("/", statusHandler(host))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://%s", addr)
	return l, srv
}

// statusHandler reports how many explorers are connected
func statusHandler(host *engine.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]int{"sessions": host.Sessions()}); err != nil {
			log.Printf("status: %v", err)
		}
	}
}
