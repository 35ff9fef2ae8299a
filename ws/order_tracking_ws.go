package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/events"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

var errTrackingBacklog = errors.New("tracking queue full")

// TrackingAuthorizer decides who may follow an order.
type TrackingAuthorizer interface {
	AuthorizeTracking(orderID, accountID uint, role string) (string, error)
}

// TrackingHub fans order status events out to the sockets watching each order.
// The hub goroutine never writes to a socket; each watcher has its own writer.
type TrackingHub struct {
	clients    map[uint]map[*watcher]struct{} // orderID -> watchers
	broadcast  chan events.OrderEvent
	register   chan *watcher
	unregister chan *watcher
	done       chan struct{}
	mu         sync.Mutex
	auth       TrackingAuthorizer
	log        *logger.Logger
}

// watcher is one socket following one order. send is closed by the hub when
// the watcher is dropped.
type watcher struct {
	conn    *websocket.Conn
	orderID uint
	userID  uint
	send    chan events.OrderEvent
}

func newWatcher(conn *websocket.Conn, orderID, userID uint) *watcher {
	return &watcher{conn: conn, orderID: orderID, userID: userID, send: make(chan events.OrderEvent, sendBuffer)}
}

func NewTrackingHub(auth TrackingAuthorizer, log *logger.Logger) *TrackingHub {
	return &TrackingHub{
		clients:    make(map[uint]map[*watcher]struct{}),
		broadcast:  make(chan events.OrderEvent, 64),
		register:   make(chan *watcher),
		unregister: make(chan *watcher),
		done:       make(chan struct{}),
		auth:       auth,
		log:        log,
	}
}

// Run serves register, unregister and broadcast until ctx ends.
func (h *TrackingHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, ws := range h.clients {
				for w := range ws {
					close(w.send)
				}
			}
			h.clients = map[uint]map[*watcher]struct{}{}
			h.mu.Unlock()
			return

		case w := <-h.register:
			h.mu.Lock()
			if h.clients[w.orderID] == nil {
				h.clients[w.orderID] = make(map[*watcher]struct{})
			}
			h.clients[w.orderID][w] = struct{}{}
			h.mu.Unlock()

		case w := <-h.unregister:
			h.mu.Lock()
			h.dropLocked(w)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for w := range h.clients[ev.OrderID] {
				select {
				case w.send <- ev:
				default:
					h.log.Warn("tracking_write", "", "dropping slow watcher",
						slog.Uint64("order_id", uint64(w.orderID)),
						slog.Uint64("user_id", uint64(w.userID)))
					h.dropLocked(w)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropLocked forgets w and closes its queue, which stops its writer. Orders
// left without watchers are removed. h.mu must be held.
func (h *TrackingHub) dropLocked(w *watcher) {
	ws, ok := h.clients[w.orderID]
	if !ok {
		return
	}
	if _, ok := ws[w]; !ok {
		return
	}
	delete(ws, w)
	close(w.send)
	if len(ws) == 0 {
		delete(h.clients, w.orderID)
	}
}

// Publish queues an event for the order's watchers. A full queue drops the event.
func (h *TrackingHub) Publish(ctx context.Context, e events.OrderEvent) error {
	select {
	case <-h.done:
		return errors.New("tracking hub stopped")
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case h.broadcast <- e:
		return nil
	default:
		return errTrackingBacklog
	}
}

func (h *TrackingHub) Close() error { return nil }

// Watchers reports how many sockets follow the order.
func (h *TrackingHub) Watchers(orderID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[orderID])
}

// trackedOrders reports how many orders have at least one watcher.
func (h *TrackingHub) trackedOrders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket serves /order/track/:orderId.
func (h *TrackingHub) HandleWebSocket(c *gin.Context) {
	orderID, ok := utils.ParamUint(c, "orderId")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	userID := utils.CurrentUserID(c)

	status, err := h.auth.AuthorizeTracking(orderID, userID, utils.CurrentRole(c))
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "Order not found")
		return
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "no access")
		return
	case err != nil:
		resp.ServerError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("tracking_upgrade", utils.RequestID(c), "upgrade failed", slog.String("reason", err.Error()))
		return
	}

	// current state first so the client does not wait for the next change
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(events.OrderEvent{OrderID: orderID, Status: status, At: time.Now()}); err != nil {
		conn.Close()
		return
	}

	w := newWatcher(conn, orderID, userID)
	select {
	case h.register <- w:
	case <-h.done:
		conn.Close()
		return
	}
	go h.writePump(w)
	go h.readPump(w)
}

// writePump is the only writer on the socket. It exits when the hub closes
// the queue or a write fails.
func (h *TrackingHub) writePump(w *watcher) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-w.send:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				w.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := w.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; watchers never send data.
func (h *TrackingHub) readPump(w *watcher) {
	defer func() {
		select {
		case h.unregister <- w:
		case <-h.done:
		}
	}()
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			return
		}
	}
}
