package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types pushed to kitchen displays.
const (
	EventOrderCreated = "order_created"
	EventOrderStatus  = "order_status"
	EventOrderReady   = "order_ready"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to the kitchen displays of one store. Sends are
// fire-and-forget: a dead client is logged and skipped, never surfaced
// to the operation that triggered the event.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]uint // conn -> storeID
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]uint),
		log:     log,
	}
}

// Register adds a display connection for a store.
func (h *Hub) Register(conn *websocket.Conn, storeID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = storeID
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// OrderCreated announces a freshly committed order.
func (h *Hub) OrderCreated(storeID uint, order interface{}) {
	h.broadcast(storeID, Message{Event: EventOrderCreated, Data: order})
}

// OrderStatusChanged announces any lifecycle transition.
func (h *Hub) OrderStatusChanged(storeID uint, order interface{}) {
	h.broadcast(storeID, Message{Event: EventOrderStatus, Data: order})
}

// OrderReady is the distinguished event fired when an order enters READY,
// in addition to the status event.
func (h *Hub) OrderReady(storeID uint, order interface{}) {
	h.broadcast(storeID, Message{Event: EventOrderReady, Data: order})
}

func (h *Hub) broadcast(storeID uint, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Errorf("kds: marshal %s event: %v", msg.Event, err)
		return
	}

	for conn, id := range h.clients {
		if id != storeID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Errorf("kds: send %s event to store %d client: %v", msg.Event, storeID, err)
		}
	}
}
