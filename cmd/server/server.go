package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/config"
	"github.com/marben/mandel_explorer/internal/engine"
)

// main is the entry point of the engine host.
// Note: every connected explorer gets its own engine; rendering is done here, on the host's CPUs.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	cfg, err := config.Load("server", os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	host := engine.NewHost(engine.WithWorkers(cfg.Workers), engine.WithTileSize(cfg.TileSize))

	// TCP
	log.Printf("tcp listening on %s", cfg.TCPAddr)
	tcpListener, err := net.Listen("tcp", cfg.TCPAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	// WEBSOCKET
	websocketListener, httpServer := webServer(context.Background(), cfg.HTTPAddr, host)

	// httpServer provides the websocket endpoint along with a status page
	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("httpServer: %v", err)
		}
	}()

	// host can serve multiple listeners. In this case both tcp and websocket
	go func() {
		if err := host.Serve(tcpListener); err != nil {
			log.Fatalf("host.Serve tcp: %v", err)
		}
	}()
	go func() {
		if err := host.Serve(websocketListener); err != nil {
			log.Fatalf("host.Serve ws: %v", err)
		}
	}()

	log.Printf("engine host waiting for tcp and websocket connections")
	select {}
}
