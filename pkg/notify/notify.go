package notify

import (
	"encoding/json"
	"log/slog"

	"github.com/Hrafn1377/prosjektravn/websocket"
)

// Notifier delivers a change event to every open connection of one user.
// Delivery is best-effort by contract: implementations must not block the
// caller and must not surface delivery failures to it.
type Notifier interface {
	NotifyUser(userID int, event interface{})
}

// WSNotifier implements Notifier on top of the websocket Hub.
type WSNotifier struct {
	Hub *websocket.Hub
}

// NotifyUser serializes the event and hands it to the hub. A marshal failure
// is logged and the event is dropped; the originating mutation already
// succeeded and is never rolled back for relay problems.
func (n *WSNotifier) NotifyUser(userID int, event interface{}) {
	if n == nil || n.Hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal change event", "err", err)
		return
	}
	n.Hub.NotifyUser(userID, payload)
}
