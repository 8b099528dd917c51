package controllers

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/app/services/shared/realtime"
	"meetocure-service/internal/pkg/constvars"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type RealtimeController struct {
	Log                 *zap.Logger
	Hub                 *realtime.Hub
	NotificationUsecase contracts.NotificationUsecase
	InternalConfig      *config.InternalConfig
	upgrader            websocket.Upgrader
}

func NewRealtimeController(logger *zap.Logger, hub *realtime.Hub, notificationUsecase contracts.NotificationUsecase, internalConfig *config.InternalConfig) *RealtimeController {
	ctrl := &RealtimeController{
		Log:                 logger,
		Hub:                 hub,
		NotificationUsecase: notificationUsecase,
		InternalConfig:      internalConfig,
	}
	ctrl.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     ctrl.checkOrigin,
	}
	hub.OnMessage(constvars.RealtimeEventReadNotification, ctrl.readNotification)
	return ctrl
}

// Connect upgrades an authenticated request. The connection may join the
// room of the session user, and the reviewer room for hospital and admin
// sessions.
func (ctrl *RealtimeController) Connect(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "RealtimeController.Connect")
	if !ok {
		return
	}

	conn, err := ctrl.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already wrote the handshake error
		ctrl.Log.Warn("RealtimeController.Connect upgrade failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		return
	}

	client := realtime.NewClient(uuid.NewString(), session.UserID, ctrl.InternalConfig.Realtime.SendQueueSize)
	client.Role = session.Role
	ctrl.Log.Info("RealtimeController.Connect connection opened",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConnectionIDKey, client.ID),
		zap.String(constvars.LoggingUserIDKey, session.UserID))

	ctrl.Hub.Serve(r.Context(), client, conn, realtime.PumpConfig{
		WriteWait:      ctrl.InternalConfig.Realtime.WriteWait,
		PongWait:       ctrl.InternalConfig.Realtime.PongWait,
		MaxMessageSize: ctrl.InternalConfig.Realtime.MaxMessageSizeBytes,
	})

	ctrl.Log.Info("RealtimeController.Connect connection closed",
		zap.String(constvars.LoggingConnectionIDKey, client.ID))
}

func (ctrl *RealtimeController) readNotification(ctx context.Context, client *realtime.Client, message *realtime.InboundMessage) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout(ctrl.InternalConfig))
	defer cancel()
	session := &models.Session{UserID: client.UserID, Role: client.Role}
	return ctrl.NotificationUsecase.ReadAndDiscard(ctx, session, message.NotificationID)
}

func (ctrl *RealtimeController) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range ctrl.InternalConfig.Realtime.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	parsed, err := url.Parse(origin)
	return err == nil && strings.EqualFold(parsed.Host, r.Host)
}
