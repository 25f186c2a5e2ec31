package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// Event types
const (
	EventOrderUpdate       = "order_update"
	EventTableUpdate       = "table_update"
	EventReservationUpdate = "reservation_update"
	EventReservationDelete = "reservation_delete"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client owns its connection's writes; broadcast only queues on send.
type client struct {
	conn *websocket.Conn
	role models.Role
	send chan []byte
}

// Hub keeps the kitchen display and admin screens connected on this device
// and pushes every committed change to them.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

func (h *Hub) RegisterClient(conn *websocket.Conn, role models.Role) {
	c := &client{conn: conn, role: role, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	count := len(h.clients)
	h.mutex.Unlock()

	go h.writePump(c)
	utils.InfoLogger.Printf("KDS client connected (role=%s, clients=%d)", role, count)
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(conn)
}

// removeLocked closes the send queue; the write pump then closes the
// connection.
func (h *Hub) removeLocked(conn *websocket.Conn) {
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) OrderUpdated(order models.Order) {
	h.broadcast(Message{Event: EventOrderUpdate, Data: order})
}

func (h *Hub) TableUpdated(table models.Table) {
	h.broadcast(Message{Event: EventTableUpdate, Data: table})
}

func (h *Hub) ReservationUpdated(reservation models.Reservation) {
	h.broadcast(Message{Event: EventReservationUpdate, Data: reservation})
}

func (h *Hub) ReservationDeleted(id string) {
	h.broadcast(Message{Event: EventReservationDelete, Data: map[string]string{"id": id}})
}

// broadcast never waits on a peer. A client whose queue is full has fallen
// behind and is dropped.
func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.Printf("Dropping slow %s client on %s", c.role, msg.Event)
			h.removeLocked(conn)
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending to %s client: %v", c.role, err)
			h.UnregisterClient(c.conn)
			return
		}
	}
}
