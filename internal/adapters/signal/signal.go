package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/patchbay/internal/app/orch"
	"github.com/dkeye/patchbay/internal/config"
	"github.com/dkeye/patchbay/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// Options tune a single websocket connection.
type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		PongWait:   cfg.PongWait,
		WriteWait:  cfg.WriteWait,
		SendBuffer: cfg.SendBuffer,
	}
}

type SignalWSController struct {
	Orch    *orch.Orchestrator
	Limiter *SignalRateLimiter

	opts     Options
	upgrader websocket.Upgrader
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	opts := OptionsFromConfig(cfg)
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 32
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = 5 * time.Second
	}
	return &SignalWSController{
		Orch:    o,
		Limiter: NewSignalRateLimiter(cfg.SignalRate, cfg.SignalBurst),
		opts:    opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// WsSignalConn is the core.SignalConnection backed by a websocket.
// Frames are queued on send and written by writePump.
type WsSignalConn struct {
	conn       *websocket.Conn
	send       chan core.Frame
	cancel     context.CancelFunc
	privileged bool

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

// Close is idempotent. The read pump notices the closed socket and runs
// the disconnect cascade.
func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.cancel()
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and registers the connection.
// privileged is decided by the caller before the upgrade.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context, privileged bool) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.opts.ReadLimit > 0 {
		ws.SetReadLimit(ctl.opts.ReadLimit)
	}

	ctx, cancel := context.WithCancel(ctx)
	conn := &WsSignalConn{
		conn:       ws,
		send:       make(chan core.Frame, ctl.opts.SendBuffer),
		cancel:     cancel,
		privileged: privileged,
	}

	sid := ctl.Orch.Connect(conn, c.Query("name"), privileged)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Bool("privileged", privileged).Str("remote", c.ClientIP()).Msg("new WS connection")

	go ctl.writePump(ctx, conn)
	go ctl.readPump(sid, conn)
}
