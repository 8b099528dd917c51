package notifications

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

type notificationDispatcher struct {
	NotificationRepository contracts.NotificationRepository
	RealtimePublisher      contracts.RealtimePublisher
	Log                    *zap.Logger
	now                    func() time.Time
}

var (
	notificationDispatcherInstance contracts.NotificationDispatcher
	onceNotificationDispatcher     sync.Once
)

func NewNotificationDispatcher(
	notificationRepository contracts.NotificationRepository,
	realtimePublisher contracts.RealtimePublisher,
	logger *zap.Logger,
) contracts.NotificationDispatcher {
	onceNotificationDispatcher.Do(func() {
		notificationDispatcherInstance = &notificationDispatcher{
			NotificationRepository: notificationRepository,
			RealtimePublisher:      realtimePublisher,
			Log:                    logger,
			now:                    time.Now,
		}
	})
	return notificationDispatcherInstance
}

// OnLifecycleEvent persists the recipient's notification and then pushes it.
// Only the persist step can fail the call; a push that reaches nobody is
// logged and dropped since the notification is still listed on the next pull.
func (d *notificationDispatcher) OnLifecycleEvent(ctx context.Context, event *models.LifecycleEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	d.Log.Info("notificationDispatcher.OnLifecycleEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, event.EventID),
		zap.String(constvars.LoggingEventKindKey, string(event.Kind)),
		zap.String(constvars.LoggingToStatusKey, event.ToStatus),
	)

	notification := buildNotification(event)
	if notification == nil {
		return nil
	}

	// CreatedAt is the persist time, not the event time
	notification.CreatedAt = d.now()
	err := d.NotificationRepository.Insert(ctx, notification)
	if exceptions.IsKind(err, exceptions.KindDuplicate) {
		d.Log.Info("notificationDispatcher.OnLifecycleEvent notification already stored",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNotificationIDKey, notification.ID),
		)
		return nil
	}
	if err != nil {
		d.Log.Error("notificationDispatcher.OnLifecycleEvent error storing notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Error(err),
		)
		return err
	}

	if d.RealtimePublisher == nil {
		return nil
	}
	err = d.RealtimePublisher.Publish(ctx, notification.RecipientUserID, &models.RealtimeMessage{
		Event: constvars.RealtimeEventReceiveNotification,
		Data:  notification,
	})
	if err != nil {
		d.Log.Warn("notificationDispatcher.OnLifecycleEvent push not delivered",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRecipientIDKey, notification.RecipientUserID),
			zap.String(constvars.LoggingNotificationIDKey, notification.ID),
			zap.Error(err),
		)
	}
	return nil
}
