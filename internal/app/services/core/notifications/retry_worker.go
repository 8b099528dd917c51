package notifications

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

// RetryWorker periodically redispatches lifecycle events whose notification
// could not be stored the first time, with at-least-once semantics.
type RetryWorker struct {
	log        *zap.Logger
	cfg        *config.InternalConfig
	locker     contracts.LockerService
	queue      contracts.EventQueueService
	dispatcher contracts.NotificationDispatcher
	interval   time.Duration
	stop       chan struct{}
}

func NewRetryWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, queue contracts.EventQueueService, dispatcher contracts.NotificationDispatcher) *RetryWorker {
	interval := time.Duration(cfg.RabbitMQ.WorkerIntervalInSecond) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	return &RetryWorker{
		log:        log,
		cfg:        cfg,
		locker:     lockerSvc,
		queue:      queue,
		dispatcher: dispatcher,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *RetryWorker) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(w.interval)

	w.log.Info("notifications.RetryWorker started", zap.Duration("interval", w.interval))

	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *RetryWorker) runOnce(ctx context.Context, now time.Time) {
	ttl := w.interval - time.Second
	if ttl < time.Second {
		ttl = time.Second
	}
	acquired, lockValue, err := w.locker.TryLock(ctx, constvars.RedisEventRetryWorkerLockKey, ttl)
	if err != nil {
		w.log.Info("notifications.RetryWorker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Debug("notifications.RetryWorker lock not acquired; another instance is running")
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisEventRetryWorkerLockKey, lockValue); err != nil {
			w.log.Error("notifications.RetryWorker unlock failed", zap.Error(err))
		}
	}()

	max := w.cfg.RabbitMQ.MaxQueue
	if max <= 0 {
		max = 1
	}
	out, err := w.queue.FetchN(ctx, &contracts.FetchEventsInput{Max: max})
	if err != nil {
		w.log.Info("notifications.RetryWorker FetchN error", zap.Error(err))
		return
	}

	w.log.Info("notifications.RetryWorker tick",
		zap.Time("now", now),
		zap.Int(constvars.LoggingCountKey, len(out.Events)),
	)
	for _, item := range out.Events {
		w.processItem(ctx, item)
	}
}

func (w *RetryWorker) processItem(ctx context.Context, item contracts.QueuedEvent) {
	event := item.Event
	err := w.dispatcher.OnLifecycleEvent(ctx, event)
	if err == nil {
		if ackErr := w.queue.Ack(ctx, item.DeliveryTag); ackErr != nil {
			w.log.Info("notifications.RetryWorker ack failed after success",
				zap.String(constvars.LoggingEventIDKey, event.EventID),
				zap.Error(ackErr),
			)
		}
		return
	}

	event.FailedCount++
	if event.FailedCount >= w.cfg.RabbitMQ.ThrottleRetry {
		if qerr := w.queue.EnqueueToDeadQueue(ctx, &contracts.EnqueueEventInput{Event: event}); qerr != nil {
			w.log.Info("notifications.RetryWorker enqueue to DLQ failed",
				zap.String(constvars.LoggingEventIDKey, event.EventID),
				zap.Error(qerr),
			)
			w.releaseForRedelivery(ctx, item)
			return
		}
		_ = w.queue.Ack(ctx, item.DeliveryTag)
		w.log.Warn("notifications.RetryWorker moved event to DLQ",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Int(constvars.LoggingFailedCountKey, event.FailedCount),
			zap.Error(err),
		)
		return
	}

	if qerr := w.queue.Enqueue(ctx, &contracts.EnqueueEventInput{Event: event}); qerr != nil {
		w.log.Info("notifications.RetryWorker reenqueue failed",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Error(qerr),
		)
		w.releaseForRedelivery(ctx, item)
		return
	}
	_ = w.queue.Ack(ctx, item.DeliveryTag)
	w.log.Info("notifications.RetryWorker retryable failure; requeued",
		zap.String(constvars.LoggingEventIDKey, event.EventID),
		zap.Int(constvars.LoggingFailedCountKey, event.FailedCount),
		zap.Error(err),
	)
}

// releaseForRedelivery returns an unacknowledged delivery to the broker.
func (w *RetryWorker) releaseForRedelivery(ctx context.Context, item contracts.QueuedEvent) {
	if err := w.queue.Nack(ctx, item.DeliveryTag, true); err != nil {
		w.log.Error("notifications.RetryWorker nack failed",
			zap.String(constvars.LoggingEventIDKey, item.Event.EventID),
			zap.Error(err),
		)
	}
}
