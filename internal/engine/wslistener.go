package engine

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	mandel "github.com/marben/mandel_explorer"
)

// maxMessageSize bounds one websocket frame; finished images travel whole.
const maxMessageSize = 256 << 20

// WebsocketListener implements net.Listener
// it's a wrapper around websocket.Conn
type WebsocketListener struct {
	ch     chan *websocket.Conn
	done   chan struct{}
	once   sync.Once
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
	log    *slog.Logger
}

func NewWebsocketListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
		log:    mandel.Logger().With("component", "websocket"),
	}
}

// Handler handles the http ws endpoint
// if websocket is successfully initialized it is passed to the listener so it can be accepted
func (l *WebsocketListener) Handler(originPatterns ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			l.log.Warn("websocket accept", "err", err)
			return
		}
		c.SetReadLimit(maxMessageSize)

		select {
		case l.ch <- c:
		case <-l.done:
			c.Close(websocket.StatusGoingAway, "listener closed")
		case <-r.Context().Done():
			c.Close(websocket.StatusGoingAway, "request cancelled")
		}
	}
}

func (l *WebsocketListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, context.Cause(l.ctx)
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.once.Do(func() { close(l.done) })
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
