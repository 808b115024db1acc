package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/scastd/render"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The socket is only reachable on the loopback interface.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// connection is a middleman between one renderer socket and the hub.
type connection struct {
	ws     *websocket.Conn
	send   chan []byte
	hub    *Hub
	logger zerolog.Logger
}

func (c *connection) cleanup() {
	c.hub.unregister <- c
	if err := c.ws.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("error closing renderer connection")
	}
}

func (c *connection) readPump() {
	defer c.cleanup()

	c.ws.SetReadLimit(maxMessageSize)
	if err := c.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error().Err(err).Msg("renderer read error")
			}
			break
		}

		var ev v1alpha1.RendererEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			c.logger.Error().Err(err).Msg("invalid renderer event")
			continue
		}
		c.hub.player.ReportEvent(ev)
	}
}

func (c *connection) write(mt int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(mt, payload)
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				_ = c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, message); err != nil {
				c.logger.Error().Err(err).Msg("failed to write frame")
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}

// Hub broadcasts render frames to connected renderers and feeds their
// playback events back to the player. It implements render.Sink: the
// scheduler never blocks on a slow or absent renderer.
type Hub struct {
	player Player

	connections map[*connection]bool
	register    chan *connection
	unregister  chan *connection
	broadcast   chan []byte

	// last is the most recent non-fade frame, replayed to renderers
	// that connect mid-playback
	last []byte

	logger zerolog.Logger
}

// NewHub creates the renderer hub. The player is bound to it when the
// hub is handed to NewHandler; the scheduler can take the hub as its
// sink before the control handler exists.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[*connection]bool),
		register:    make(chan *connection),
		unregister:  make(chan *connection),
		broadcast:   make(chan []byte, 16),
		logger:      logger,
	}
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.connections {
				close(c.send)
				delete(h.connections, c)
			}
			return
		case c := <-h.register:
			h.connections[c] = true
			h.logger.Info().Int("connections", len(h.connections)).Msg("renderer connected")
			if h.last != nil {
				select {
				case c.send <- h.last:
				default:
				}
			}
		case c := <-h.unregister:
			if _, ok := h.connections[c]; ok {
				delete(h.connections, c)
				close(c.send)
				h.logger.Info().Int("connections", len(h.connections)).Msg("renderer disconnected")
			}
		case m := <-h.broadcast:
			var probe v1alpha1.Frame
			if err := json.Unmarshal(m, &probe); err == nil && probe.Kind != v1alpha1.FrameKindFade {
				h.last = m
			}
			for c := range h.connections {
				select {
				case c.send <- m:
				default:
					close(c.send)
					delete(h.connections, c)
				}
			}
		}
	}
}

func (h *Hub) post(frame *v1alpha1.Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal frame")
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn().Str("kind", frame.Kind).Msg("dropping frame, hub backlogged")
	}
}

// ShowLoading implements render.Sink.
func (h *Hub) ShowLoading() {
	h.post(render.LoadingFrame())
}

// ShowError implements render.Sink.
func (h *Hub) ShowError(message string) {
	h.post(render.ErrorFrame(message))
}

// ShowSlide implements render.Sink.
func (h *Hub) ShowSlide(frame *v1alpha1.Frame) {
	h.post(frame)
}

// Fade implements render.Sink.
func (h *Hub) Fade(out bool, duration time.Duration, generation uint64) {
	h.post(render.FadeFrame(out, duration, generation))
}

// ServeWS upgrades a renderer connection and joins it to the hub.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &connection{
		ws:     ws,
		send:   make(chan []byte, 256),
		hub:    h.hub,
		logger: h.logger,
	}
	c.hub.register <- c

	go c.writePump()
	c.readPump()
}
