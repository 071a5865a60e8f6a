package signal

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/avrek/Beacon/internal/app"
	"github.com/avrek/Beacon/internal/config"
	"github.com/avrek/Beacon/internal/core"
)

// Controller accepts websocket connections and bridges them to the relay:
// upgrade, register, pump, unregister.
type Controller struct {
	relay   *app.Relay
	cfg     *config.Config
	limiter *MessageRateLimiter
}

func NewController(relay *app.Relay, cfg *config.Config) *Controller {
	ctl := &Controller{relay: relay, cfg: cfg}
	if cfg.MsgRateLimit > 0 {
		ctl.limiter = NewMessageRateLimiter(cfg.MsgRateLimit, cfg.MsgRateInterval)
	}
	return ctl
}

// wsConn wraps one gorilla connection behind the SignalConnection port. Sends
// never block: a full buffer yields ErrBackpressure and the frame is dropped.
type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and hands the connection to the relay. The
// participant id exists only for this connection's lifetime.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}

	p := ctl.relay.OnConnect(conn)
	log.Info().Str("module", "signal").Str("id", string(p.ID)).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, p.ID, conn)
	go ctl.readPump(ctx, p.ID, conn, cancel)
}
