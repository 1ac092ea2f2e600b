package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/coder/websocket"
	"github.com/marben/irpc"
	mandel "github.com/marben/mandel_explorer"
)

var errConnectionClosed = errors.New("connection closed")

// Remote is a RenderEngine backed by a Host on the other end of a connection.
type Remote struct {
	ep     *irpc.Endpoint
	engine *engineServiceIrpcClient
	ready  chan struct{}
	once   sync.Once
	log    *slog.Logger

	mu      sync.Mutex
	cb      mandel.EngineCallbacks
	params  *mandel.RenderParameters
	running bool
	img     *image.RGBA
	stats   mandel.Statistics
}

// NewRemote runs the engine protocol on conn.
func NewRemote(conn io.ReadWriteCloser) (*Remote, error) {
	r := &Remote{
		ready: make(chan struct{}),
		log:   mandel.Logger().With("component", "remote"),
	}

	// the host reports progress through our callback service
	r.ep = irpc.NewEndpoint(conn, irpc.WithEndpointServices(newCallbackServiceIrpcService(remoteCallbacks{r})))
	client, err := newEngineServiceIrpcClient(r.ep)
	if err != nil {
		r.ep.Close()
		return nil, err
	}
	r.engine = client
	go r.watch()
	return r, nil
}

// DialTCP connects to a Host listening on a tcp address.
func DialTCP(ctx context.Context, addr string) (*Remote, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewRemote(conn)
}

// DialWebsocket connects to a Host behind a websocket endpoint, eg. ws://localhost:8080/ws.
func DialWebsocket(ctx context.Context, url string) (*Remote, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", url, err)
	}
	c.SetReadLimit(maxMessageSize)
	return NewRemote(websocket.NetConn(context.Background(), c, websocket.MessageBinary))
}

// Initialize waits until the host is ready, then initializes its engine.
func (r *Remote) Initialize(cb mandel.EngineCallbacks, precisionDigits int) error {
	if cb == nil {
		return errors.New("nil callbacks")
	}
	r.mu.Lock()
	r.cb = cb
	r.mu.Unlock()

	select {
	case <-r.ready:
	case <-r.ep.Context().Done():
		return fmt.Errorf("%w: %w", errConnectionClosed, context.Cause(r.ep.Context()))
	}
	if err := r.engine.Init(precisionDigits); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return nil
}

func (r *Remote) SetParameters(p mandel.RenderParameters) error {
	if err := validate(p); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return ErrBusy
	}
	r.params = &p
	return nil
}

func (r *Remote) StartRendering() error {
	if r.ep.Context().Err() != nil {
		return fmt.Errorf("%w: %w", errConnectionClosed, context.Cause(r.ep.Context()))
	}
	r.mu.Lock()
	switch {
	case r.cb == nil:
		r.mu.Unlock()
		return errNotInitialized
	case r.params == nil:
		r.mu.Unlock()
		return errNoParameters
	case r.running:
		r.mu.Unlock()
		return ErrBusy
	}
	r.running = true
	p := *r.params
	r.mu.Unlock()

	if err := r.engine.Render(toWire(p)); err != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		if !r.running {
			// already reported through ErrorOccurred
			return nil
		}
		r.running = false
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (r *Remote) Image() (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil, ErrBusy
	}
	if r.img == nil {
		return nil, errNoImage
	}
	return r.img, nil
}

func (r *Remote) Statistics() mandel.Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Close closes the connection. A job in flight is reported as failed.
func (r *Remote) Close() error {
	return r.ep.Close()
}

func (r *Remote) callbacks() mandel.EngineCallbacks {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cb
}

// finish marks the job done and reports whether one was running.
func (r *Remote) finish() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	wasRunning := r.running
	r.running = false
	return wasRunning
}

// watch reports a job in flight as failed once the connection is gone.
func (r *Remote) watch() {
	<-r.ep.Context().Done()
	cause := context.Cause(r.ep.Context())
	r.log.Info("connection closed", "cause", cause)
	if r.finish() {
		if cb := r.callbacks(); cb != nil {
			cb.ErrorOccurred(fmt.Errorf("connection lost: %w", cause))
		}
	}
}

// remoteCallbacks implements callbackService, turning host calls into
// engine callbacks.
type remoteCallbacks struct {
	r *Remote
}

func (c remoteCallbacks) Ready() error {
	c.r.once.Do(func() { close(c.r.ready) })
	return nil
}

func (c remoteCallbacks) Begun() error {
	c.r.callbacks().RenderingBegun()
	return nil
}

func (c remoteCallbacks) Region(rect image.Rectangle) error {
	c.r.callbacks().RegionRendered(rect)
	return nil
}

func (c remoteCallbacks) Stats(stats mandel.Statistics) error {
	c.r.mu.Lock()
	c.r.stats = stats
	c.r.mu.Unlock()
	c.r.callbacks().StatsGenerated()
	return nil
}

func (c remoteCallbacks) Ended(img *image.RGBA) error {
	err := checkImage(img)
	c.r.mu.Lock()
	c.r.running = false
	if err == nil {
		c.r.img = img
	}
	c.r.mu.Unlock()
	if err != nil {
		c.r.callbacks().ErrorOccurred(err)
		return err
	}
	c.r.callbacks().RenderingEnded()
	return nil
}

func (c remoteCallbacks) Failed(msg string) error {
	c.r.finish()
	c.r.callbacks().ErrorOccurred(errors.New(msg))
	return nil
}
