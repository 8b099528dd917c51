package realtime

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// InboundMessage is a frame sent by a connected client.
type InboundMessage struct {
	Event          string `json:"event"`
	UserID         string `json:"userId,omitempty"`
	NotificationID string `json:"notificationId,omitempty"`
}

// MessageHandler receives inbound events the hub does not handle itself.
type MessageHandler func(ctx context.Context, client *Client, message *InboundMessage) error

// Relay fans a publish out to every instance sharing the hub's rooms.
type Relay interface {
	Publish(ctx context.Context, userID string, payload []byte) error
}

// Client is one live connection. It may join the room of the user it
// authenticated as, and reviewer accounts may also join the reviewer room.
type Client struct {
	ID     string
	UserID string
	Role   string
	Send   chan []byte
	rooms  map[string]struct{}
}

func NewClient(id, userID string, queueSize int) *Client {
	if queueSize <= 0 {
		queueSize = constvars.DefaultRealtimeClientSendQueue
	}
	return &Client{
		ID:     id,
		UserID: userID,
		Send:   make(chan []byte, queueSize),
		rooms:  make(map[string]struct{}),
	}
}

// Hub maps a user id to the connections currently joined to that user's
// room. Membership lives only as long as the connection.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*Client]struct{}
	all      map[*Client]struct{}
	handlers map[string]MessageHandler
	relay    Relay
	Log      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		all:      make(map[*Client]struct{}),
		handlers: make(map[string]MessageHandler),
		Log:      logger,
	}
}

var _ contracts.RealtimePublisher = (*Hub)(nil)

// SetRelay routes every Publish through relay instead of delivering
// locally. The relay is expected to call Deliver on each instance.
func (h *Hub) SetRelay(relay Relay) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.relay = relay
}

// OnMessage registers handler for inbound frames carrying event.
func (h *Hub) OnMessage(event string, handler MessageHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[event] = handler
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[client] = struct{}{}
}

// Deregister drops the client from every room and closes its send queue.
func (h *Hub) Deregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for userID := range client.rooms {
		h.leaveLocked(client, userID)
	}
	delete(h.all, client)
	close(client.Send)
}

func (h *Hub) Join(client *Client, userID string) error {
	if !client.mayJoin(userID) {
		return exceptions.ErrRealtimeJoinForbidden(nil, client.UserID, userID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return exceptions.ErrRealtimeNoSubscriber(nil, userID)
	}
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*Client]struct{})
	}
	h.rooms[userID][client] = struct{}{}
	client.rooms[userID] = struct{}{}
	return nil
}

func (c *Client) mayJoin(room string) bool {
	if room == "" {
		return false
	}
	if room == constvars.ReviewerRoom {
		return c.Role == constvars.RoleHospital || c.Role == constvars.RoleAdmin
	}
	return room == c.UserID
}

func (h *Hub) Leave(client *Client, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(client, userID)
}

func (h *Hub) leaveLocked(client *Client, userID string) {
	if members, ok := h.rooms[userID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, userID)
		}
	}
	delete(client.rooms, userID)
}

// Publish pushes message to every connection joined to userID's room.
// Without a relay it fails with a DeliveryFailure when nobody is joined.
func (h *Hub) Publish(ctx context.Context, userID string, message *models.RealtimeMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	h.mu.RLock()
	relay := h.relay
	h.mu.RUnlock()

	if relay != nil {
		if err := relay.Publish(ctx, userID, payload); err != nil {
			return exceptions.ErrRealtimeDelivery(err, userID)
		}
		return nil
	}

	if h.Deliver(userID, payload) == 0 {
		return exceptions.ErrRealtimeNoSubscriber(nil, userID)
	}
	return nil
}

// Deliver writes payload to the local connections in userID's room and
// returns how many accepted it. A connection whose queue is full is skipped.
func (h *Hub) Deliver(userID string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.rooms[userID] {
		select {
		case client.Send <- payload:
			delivered++
		default:
			h.Log.Warn("Hub.Deliver client queue full, dropping message",
				zap.String(constvars.LoggingUserIDKey, userID),
				zap.String(constvars.LoggingConnectionIDKey, client.ID),
			)
		}
	}
	return delivered
}

// HandleInbound applies join and leave itself and hands every other event to
// the handler registered for it.
func (h *Hub) HandleInbound(ctx context.Context, client *Client, message *InboundMessage) error {
	switch message.Event {
	case constvars.RealtimeEventJoin:
		if err := h.Join(client, message.UserID); err != nil {
			return err
		}
		h.sendDirect(client, &models.RealtimeMessage{Event: constvars.RealtimeEventJoined, Data: message.UserID})
		return nil
	case constvars.RealtimeEventLeave:
		h.Leave(client, message.UserID)
		return nil
	}

	h.mu.RLock()
	handler, ok := h.handlers[message.Event]
	h.mu.RUnlock()
	if !ok {
		h.Log.Debug("Hub.HandleInbound unknown event",
			zap.String(constvars.LoggingRealtimeEventKey, message.Event),
			zap.String(constvars.LoggingConnectionIDKey, client.ID),
		)
		return nil
	}
	return handler(ctx, client, message)
}

func (h *Hub) sendDirect(client *Client, message *models.RealtimeMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.all[client]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

func (h *Hub) RoomSize(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
