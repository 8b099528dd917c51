package notifications

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

type lifecycleEventPublisher struct {
	Dispatcher      contracts.NotificationDispatcher
	EventQueue      contracts.EventQueueService
	DispatchTimeout time.Duration
	Log             *zap.Logger
}

func NewLifecycleEventPublisher(
	dispatcher contracts.NotificationDispatcher,
	eventQueue contracts.EventQueueService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.LifecycleEventPublisher {
	timeout := internalConfig.Notification.DispatchTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &lifecycleEventPublisher{
		Dispatcher:      dispatcher,
		EventQueue:      eventQueue,
		DispatchTimeout: timeout,
		Log:             logger,
	}
}

// Publish dispatches in-line and parks the event on the retry queue when the
// notification could not be stored. The error is returned only when the
// event could be neither dispatched nor queued.
func (p *lifecycleEventPublisher) Publish(ctx context.Context, event *models.LifecycleEvent) error {
	dispatchCtx, cancel := context.WithTimeout(ctx, p.DispatchTimeout)
	defer cancel()

	err := p.Dispatcher.OnLifecycleEvent(dispatchCtx, event)
	if err == nil {
		return nil
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Warn("lifecycleEventPublisher.Publish dispatch failed, queueing for retry",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, event.EventID),
		zap.Error(err),
	)
	if p.EventQueue == nil {
		return err
	}
	return p.EventQueue.Enqueue(ctx, &contracts.EnqueueEventInput{Event: event})
}
