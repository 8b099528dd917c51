package realtime

import (
	"context"
	"errors"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Conn is the part of *websocket.Conn the pumps use.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

type PumpConfig struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
}

func (c PumpConfig) pingPeriod() time.Duration {
	return (c.PongWait * 9) / 10
}

// Serve registers client, runs its write pump in the background and blocks
// in the read pump until the connection drops.
func (h *Hub) Serve(ctx context.Context, client *Client, conn Conn, cfg PumpConfig) {
	h.Register(client)
	go h.writePump(client, conn, cfg)
	h.readPump(ctx, client, conn, cfg)
}

func (h *Hub) readPump(ctx context.Context, client *Client, conn Conn, cfg PumpConfig) {
	defer func() {
		h.Deregister(client)
		conn.Close()
	}()

	if cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}
	if cfg.PongWait > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Info("Hub.readPump connection closed unexpectedly",
					zap.String(constvars.LoggingConnectionIDKey, client.ID),
					zap.Error(err),
				)
			}
			return
		}

		message := new(InboundMessage)
		if err := json.Unmarshal(data, message); err != nil {
			h.replyError(client, exceptions.ErrCannotParseJSON(err))
			continue
		}

		if err := h.HandleInbound(ctx, client, message); err != nil {
			h.Log.Warn("Hub.readPump inbound event failed",
				zap.String(constvars.LoggingConnectionIDKey, client.ID),
				zap.String(constvars.LoggingRealtimeEventKey, message.Event),
				zap.Error(err),
			)
			h.replyError(client, err)
		}
	}
}

func (h *Hub) writePump(client *Client, conn Conn, cfg PumpConfig) {
	var ping <-chan time.Time
	if cfg.PongWait > 0 {
		ticker := time.NewTicker(cfg.pingPeriod())
		defer ticker.Stop()
		ping = ticker.C
	}
	defer conn.Close()

	for {
		select {
		case payload, ok := <-client.Send:
			h.setWriteDeadline(conn, cfg)
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ping:
			h.setWriteDeadline(conn, cfg)
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) setWriteDeadline(conn Conn, cfg PumpConfig) {
	if cfg.WriteWait > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
	}
}

func (h *Hub) replyError(client *Client, err error) {
	message := constvars.ErrClientCannotProcessRequest
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		message = customErr.ClientMessage
	}
	h.sendDirect(client, &models.RealtimeMessage{Event: constvars.RealtimeEventError, Data: message})
}
