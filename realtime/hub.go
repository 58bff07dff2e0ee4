// Package realtime pushes console events to connected owner dashboards
// over websocket so order and unit changes show up without polling.
package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/danuarta/property-console/models"
)

const (
	EventOrderCreate    = "order_create"
	EventOrderUpdate    = "order_update"
	EventUnitUpdate     = "unit_update"
	EventBuildingUpdate = "building_update"
	EventDashboard      = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected owner console keyed by the account the
// connection authenticated as.
type Hub struct {
	clients map[*websocket.Conn]uint
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]uint),
}

// RegisterClient adds a connection for an account.
func RegisterClient(conn *websocket.Conn, accountID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = accountID
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreate notifies the owning account that a guest placed an
// order.
func BroadcastOrderCreate(ownerAccountID uint, order models.Order) {
	sendToAccount(ownerAccountID, Message{Event: EventOrderCreate, Data: order})
}

// BroadcastOrderUpdate notifies the owning account of a status change.
func BroadcastOrderUpdate(ownerAccountID uint, order models.Order) {
	sendToAccount(ownerAccountID, Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastUnitUpdate notifies the owning account that a unit changed,
// e.g. a QR code was provisioned.
func BroadcastUnitUpdate(ownerAccountID uint, unit models.Unit) {
	sendToAccount(ownerAccountID, Message{Event: EventUnitUpdate, Data: unit})
}

// BroadcastBuildingUpdate notifies the owning account of a building change.
func BroadcastBuildingUpdate(ownerAccountID uint, building models.Building) {
	sendToAccount(ownerAccountID, Message{Event: EventBuildingUpdate, Data: building})
}

func sendToAccount(accountID uint, msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, id := range hub.clients {
		if id != accountID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
		}
	}
}
