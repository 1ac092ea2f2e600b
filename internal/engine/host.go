package engine

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/marben/irpc"
	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/precision"
)

// Host serves Local engines over irpc, one engine per connection.
type Host struct {
	opts     []Option
	log      *slog.Logger
	sessions atomic.Int64
	server   *irpc.Server
}

func NewHost(opts ...Option) *Host {
	h := &Host{
		opts: opts,
		log:  mandel.Logger().With("component", "host"),
	}
	// irpc server with onConnect hook giving every client its own engine
	h.server = irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		go h.connect(ep)
	}))
	return h
}

// Sessions returns the number of connected clients.
func (h *Host) Sessions() int {
	return int(h.sessions.Load())
}

// Serve accepts connections on l until it fails.
// It can serve several listeners at once, eg. tcp and websocket.
func (h *Host) Serve(l net.Listener) error {
	return h.server.Serve(l)
}

// Close closes all listeners and connections.
func (h *Host) Close() error {
	return h.server.Close()
}

func (h *Host) connect(ep *irpc.Endpoint) {
	h.sessions.Add(1)
	defer h.sessions.Add(-1)
	log := h.log.With("remote", ep.RemoteAddr())
	log.Info("client connected")

	// Each client provides callbacks through which its engine reports progress
	client, err := newCallbackServiceIrpcClient(ep)
	if err != nil {
		log.Warn("new callback client", "err", err)
		ep.Close()
		return
	}
	s := &session{client: client, engine: NewLocal(h.opts...), log: log}
	if err := s.engine.Initialize(s, precision.DefaultDigits); err != nil {
		log.Warn("initialize engine", "err", err)
		ep.Close()
		return
	}

	// the engine service must be registered before the client may call it
	ep.RegisterService(newEngineServiceIrpcService(s))
	if err := client.Ready(); err != nil {
		log.Warn("client not ready", "err", err)
		ep.Close()
		return
	}

	<-ep.Context().Done()
	log.Info("client disconnected", "cause", context.Cause(ep.Context()))
}

// session implements engineService for one client and relays the
// callbacks of its engine back to it.
type session struct {
	// held for the whole remote call so callbacks arrive in order
	mu     sync.Mutex
	client *callbackServiceIrpcClient
	engine *Local
	log    *slog.Logger
}

func (s *session) Init(digits int) error {
	return s.engine.Initialize(s, digits)
}

func (s *session) Render(w wireParams) error {
	p, err := w.params()
	if err != nil {
		return err
	}
	if err := s.engine.SetParameters(p); err != nil {
		return err
	}
	return s.engine.StartRendering()
}

func (s *session) relay(name string, call func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := call(); err != nil {
		s.log.Warn("relay failed", "callback", name, "err", err)
	}
}

func (s *session) RenderingBegun() { s.relay("begun", s.client.Begun) }

func (s *session) RegionRendered(rect image.Rectangle) {
	s.relay("region", func() error { return s.client.Region(rect) })
}

func (s *session) StatsGenerated() {
	stats := s.engine.Statistics()
	s.relay("stats", func() error { return s.client.Stats(stats) })
}

func (s *session) RenderingEnded() {
	img, err := s.engine.Image()
	if err != nil {
		s.ErrorOccurred(fmt.Errorf("image: %w", err))
		return
	}
	s.relay("ended", func() error { return s.client.Ended(img) })
}

func (s *session) ErrorOccurred(err error) {
	s.relay("failed", func() error { return s.client.Failed(err.Error()) })
}
