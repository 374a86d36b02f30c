package dispatch

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway serves a single trusted frontend; origin checks are left
	// to the deployment proxy.
	CheckOrigin: func(*http.Request) bool { return true },
}

// envelope wraps an event for the wire with its type tag.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// intent is an inbound frame from the presentation layer.
type intent struct {
	Action    string `json:"action"`
	VehicleID int    `json:"vehicle_id"`
}

const writeTimeout = 10 * time.Second

// handleWS upgrades the connection, streams session events out and accepts
// book/cancel intents in. All writes happen on one goroutine so frames never
// interleave.
func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorf("websocket upgrade: %v", err)
		return
	}

	sub := g.bus.Subscribe()
	out := make(chan envelope, 16)
	done := make(chan struct{})

	go g.readIntents(conn, out, done)

	defer func() {
		g.bus.Unsubscribe(sub)
		if cerr := conn.Close(); cerr != nil {
			g.log.Debugf("websocket close: %v", cerr)
		}
	}()

	for {
		var env envelope
		select {
		case <-done:
			return
		case e, ok := <-sub:
			if !ok {
				return
			}
			env = envelope{Type: e.Type(), Data: e}
		case env = <-out:
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := conn.WriteJSON(env); err != nil {
			g.log.Debugf("websocket write: %v", err)
			return
		}
	}
}

// readIntents consumes inbound frames until the peer disconnects. Intent
// errors are reported back on the out channel rather than written directly,
// keeping a single writer per connection.
func (g *Gateway) readIntents(conn *websocket.Conn, out chan<- envelope, done chan<- struct{}) {
	defer close(done)
	for {
		var in intent
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		var err error
		switch in.Action {
		case "book":
			err = g.book(in.VehicleID)
		case "cancel":
			err = g.mgr.Cancel()
		default:
			g.log.Warnf("unknown intent %q", in.Action)
			continue
		}
		if err != nil {
			select {
			case out <- envelope{Type: "error", Data: map[string]string{"reason": err.Error()}}:
			default:
			}
		}
	}
}
