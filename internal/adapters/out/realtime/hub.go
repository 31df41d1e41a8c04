// Package realtime pushes restock order events to stores and suppliers over WebSocket.
//
// A client subscribes with /ws?storeId=<id> and/or ?supplierId=<id> and receives every
// committed event of the matching orders as a JSON text message. Slow clients whose
// buffer is full are disconnected.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"restock/internal/core/domain/model/kernel"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// ErrHubClosed is returned by Publish after Close.
var ErrHubClosed = errors.New("realtime hub is closed")

// Message is the payload sent for each event.
type Message struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	StoreID    string    `json:"storeId"`
	SupplierID string    `json:"supplierId"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newMessage(e restockorder.Event) Message {
	m := Message{
		Type:       e.Name,
		OrderID:    e.OrderID.String(),
		StoreID:    e.StoreID.String(),
		SupplierID: e.SupplierID.String(),
		To:         e.To.String(),
		Reason:     e.Reason,
		OccurredAt: e.OccurredAt,
	}
	if e.From != restockorder.Unknown {
		m.From = e.From.String()
	}
	return m
}

// Subscription selects the orders a client hears about. Set fields must all match.
type Subscription struct {
	StoreID    *kernel.ID
	SupplierID *kernel.ID
}

// ParseSubscription reads storeId and supplierId; at least one is required.
func ParseSubscription(storeID, supplierID string) (Subscription, error) {
	var sub Subscription
	var errList []error
	if storeID != "" {
		id, err := kernel.IDFromHex(storeID)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("storeId", err))
		} else {
			sub.StoreID = &id
		}
	}
	if supplierID != "" {
		id, err := kernel.IDFromHex(supplierID)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("supplierId", err))
		} else {
			sub.SupplierID = &id
		}
	}
	if storeID == "" && supplierID == "" {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("storeId",
			errors.New("storeId or supplierId is required")))
	}
	return sub, errors.Join(errList...)
}

func (s Subscription) matches(e restockorder.Event) bool {
	if s.StoreID != nil && !s.StoreID.IsEqual(e.StoreID) {
		return false
	}
	if s.SupplierID != nil && !s.SupplierID.IsEqual(e.SupplierID) {
		return false
	}
	return true
}

// Hub tracks connected clients. It implements ports.EventPublisher and http.Handler.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	closed   bool
	wg       sync.WaitGroup
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "realtime_hub"),
	}
}

// ServeHTTP upgrades the request and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, err := ParseSubscription(r.URL.Query().Get("storeId"), r.URL.Query().Get("supplierId"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, sub: sub, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		c.close()
		return
	}

	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump()
		h.unregister(c)
	}()
}

// Publish sends every event to the clients subscribed to it.
func (h *Hub) Publish(_ context.Context, events ...restockorder.Event) error {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return ErrHubClosed
	}

	var slow []*client
	for _, e := range events {
		payload, err := json.Marshal(newMessage(e))
		if err != nil {
			h.mu.RUnlock()
			return err
		}
		for c := range h.clients {
			if !c.sub.matches(e) {
				continue
			}
			select {
			case c.send <- payload:
			default:
				slow = append(slow, c)
			}
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket client")
		h.unregister(c)
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and waits for their goroutines to stop.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()

	h.wg.Wait()
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.wg.Add(2)
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

type client struct {
	conn *websocket.Conn
	sub  Subscription
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump discards inbound messages and returns when the connection fails.
func (c *client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}
