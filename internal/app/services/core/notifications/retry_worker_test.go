package notifications

import (
	"context"
	"testing"
	"time"

	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestRetryWorker(queue *MockEventQueue, dispatcher *MockDispatcher, locker *MockLocker) *RetryWorker {
	cfg := &config.InternalConfig{RabbitMQ: config.AppRabbitMQ{MaxQueue: 5, ThrottleRetry: 3, WorkerIntervalInSecond: 60}}
	return NewRetryWorker(zap.NewNop(), cfg, locker, queue, dispatcher)
}

func TestRetryWorkerProcessItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Acknowledged after a successful redispatch", func(t *testing.T) {
		queue, dispatcher := new(MockEventQueue), new(MockDispatcher)
		event := appointmentEvent(models.AppointmentStatusPending, "P1", constvars.RolePatient)
		dispatcher.On("OnLifecycleEvent", mock.Anything, event).Return(nil)
		queue.On("Ack", mock.Anything, uint64(7)).Return(nil)

		w := newTestRetryWorker(queue, dispatcher, new(MockLocker))
		w.processItem(ctx, contracts.QueuedEvent{DeliveryTag: 7, Event: event})

		queue.AssertExpectations(t)
		queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("Requeued with an incremented failure count", func(t *testing.T) {
		queue, dispatcher := new(MockEventQueue), new(MockDispatcher)
		event := appointmentEvent(models.AppointmentStatusPending, "P1", constvars.RolePatient)
		dispatcher.On("OnLifecycleEvent", mock.Anything, event).Return(errStoreDown)
		queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(in *contracts.EnqueueEventInput) bool {
			return in.Event.FailedCount == 1
		})).Return(nil)
		queue.On("Ack", mock.Anything, uint64(8)).Return(nil)

		w := newTestRetryWorker(queue, dispatcher, new(MockLocker))
		w.processItem(ctx, contracts.QueuedEvent{DeliveryTag: 8, Event: event})

		queue.AssertExpectations(t)
	})

	t.Run("Moved to the dead letter queue at the retry limit", func(t *testing.T) {
		queue, dispatcher := new(MockEventQueue), new(MockDispatcher)
		event := appointmentEvent(models.AppointmentStatusPending, "P1", constvars.RolePatient)
		event.FailedCount = 2
		dispatcher.On("OnLifecycleEvent", mock.Anything, event).Return(errStoreDown)
		queue.On("EnqueueToDeadQueue", mock.Anything, mock.Anything).Return(nil)
		queue.On("Ack", mock.Anything, uint64(9)).Return(nil)

		w := newTestRetryWorker(queue, dispatcher, new(MockLocker))
		w.processItem(ctx, contracts.QueuedEvent{DeliveryTag: 9, Event: event})

		queue.AssertExpectations(t)
		queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
		assert.Equal(t, 3, event.FailedCount)
	})

	t.Run("Returned to the broker when the requeue publish fails", func(t *testing.T) {
		queue, dispatcher := new(MockEventQueue), new(MockDispatcher)
		event := appointmentEvent(models.AppointmentStatusPending, "P1", constvars.RolePatient)
		dispatcher.On("OnLifecycleEvent", mock.Anything, event).Return(errStoreDown)
		queue.On("Enqueue", mock.Anything, mock.Anything).Return(errStoreDown)
		queue.On("Nack", mock.Anything, uint64(10), true).Return(nil)

		w := newTestRetryWorker(queue, dispatcher, new(MockLocker))
		w.processItem(ctx, contracts.QueuedEvent{DeliveryTag: 10, Event: event})

		queue.AssertExpectations(t)
		queue.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
	})

	t.Run("Returned to the broker when the dead letter publish fails", func(t *testing.T) {
		queue, dispatcher := new(MockEventQueue), new(MockDispatcher)
		event := appointmentEvent(models.AppointmentStatusPending, "P1", constvars.RolePatient)
		event.FailedCount = 2
		dispatcher.On("OnLifecycleEvent", mock.Anything, event).Return(errStoreDown)
		queue.On("EnqueueToDeadQueue", mock.Anything, mock.Anything).Return(errStoreDown)
		queue.On("Nack", mock.Anything, uint64(11), true).Return(nil)

		w := newTestRetryWorker(queue, dispatcher, new(MockLocker))
		w.processItem(ctx, contracts.QueuedEvent{DeliveryTag: 11, Event: event})

		queue.AssertExpectations(t)
		queue.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
	})
}

func TestRetryWorkerRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Skips when another instance holds the lock", func(t *testing.T) {
		queue, dispatcher, locker := new(MockEventQueue), new(MockDispatcher), new(MockLocker)
		locker.On("TryLock", mock.Anything, constvars.RedisEventRetryWorkerLockKey, mock.Anything).Return(false, "", nil)

		w := newTestRetryWorker(queue, dispatcher, locker)
		w.runOnce(ctx, time.Now())

		queue.AssertNotCalled(t, "FetchN", mock.Anything, mock.Anything)
	})

	t.Run("Drains fetched events under the lock", func(t *testing.T) {
		queue, dispatcher, locker := new(MockEventQueue), new(MockDispatcher), new(MockLocker)
		event := appointmentEvent(models.AppointmentStatusAccepted, "D1", constvars.RoleDoctor)
		locker.On("TryLock", mock.Anything, constvars.RedisEventRetryWorkerLockKey, mock.Anything).Return(true, "token", nil)
		locker.On("Unlock", mock.Anything, constvars.RedisEventRetryWorkerLockKey, "token").Return(nil)
		queue.On("FetchN", mock.Anything, &contracts.FetchEventsInput{Max: 5}).
			Return(&contracts.FetchEventsOutput{Events: []contracts.QueuedEvent{{DeliveryTag: 1, Event: event}}}, nil)
		queue.On("Ack", mock.Anything, uint64(1)).Return(nil)
		dispatcher.On("OnLifecycleEvent", mock.Anything, event).Return(nil)

		w := newTestRetryWorker(queue, dispatcher, locker)
		w.runOnce(ctx, time.Now())

		locker.AssertExpectations(t)
		queue.AssertExpectations(t)
		dispatcher.AssertExpectations(t)
	})
}
