package ws

import (
	"context"
	"encoding/json"

	"social_dashboard/internal/logger"
	"social_dashboard/internal/models"
)

// Wire events. Every frame in both directions is an Envelope.
const (
	EventDataUpdated = "dataUpdated"
	EventUpdateData  = "updateData"
)

// Envelope frames every websocket message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const broadcastBuffer = 64

// Hub is the single global fanout: every broadcast goes to every currently
// connected client, independent of who owns the underlying record. Delivery
// is at-most-once and not persisted; a client disconnected at broadcast time
// loses the event permanently.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]struct{}
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		clients:    make(map[*Client]struct{}),
		log:        log,
	}
}

// Run owns the client set; all membership changes and fanout go through its
// channels, so no locking is needed. Cancel ctx to stop it on shutdown.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			if h.log != nil {
				h.log.Infow("ws_client_connected", "clients", len(h.clients))
			}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client: drop it rather than stall the fanout.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// MetricChanged broadcasts the full record to every connected client.
func (h *Hub) MetricChanged(m models.Metric) {
	h.emit(m)
}

// MetricDeleted broadcasts a tombstone for the removed record.
func (h *Hub) MetricDeleted(id string) {
	h.emit(models.MetricTombstone{ID: id, Deleted: true})
}

// emit wraps the payload in a dataUpdated envelope and queues it.
// Best-effort: marshal failures and a full queue drop the event silently.
func (h *Hub) emit(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_marshal_failed", "err", err)
		}
		return
	}
	h.rebroadcast(data)
}

// rebroadcast queues already-encoded data verbatim under a dataUpdated
// envelope. Also used for client-injected updateData events, which are
// relayed to all peers with no origin or ownership check.
func (h *Hub) rebroadcast(data json.RawMessage) {
	env, err := json.Marshal(Envelope{Event: EventDataUpdated, Data: data})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- env:
	default:
		if h.log != nil {
			h.log.Warnw("ws_broadcast_dropped", "queued", len(h.broadcast))
		}
	}
}
