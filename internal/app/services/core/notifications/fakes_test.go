package notifications

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/mock"
)

var errStoreDown = errors.New("store unavailable")

type memoryNotificationRepository struct {
	mu        sync.Mutex
	byID      map[string]models.Notification
	insertErr error
}

func newMemoryNotificationRepository() *memoryNotificationRepository {
	return &memoryNotificationRepository{byID: make(map[string]models.Notification)}
}

func (r *memoryNotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return exceptions.ErrMongoDBInsertDocument(r.insertErr)
	}
	if _, taken := r.byID[notification.ID]; taken {
		return exceptions.ErrMongoDBDuplicateDocument(nil, "notifications", notification.ID)
	}
	r.byID[notification.ID] = *notification
	return nil
}

func (r *memoryNotificationRepository) FindByRecipients(ctx context.Context, recipientUserIDs []string, limit int64) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Notification{}
	for _, n := range r.byID {
		for _, recipient := range recipientUserIDs {
			if n.RecipientUserID == recipient {
				result = append(result, n)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memoryNotificationRepository) MarkRead(ctx context.Context, notificationID, recipientUserID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[notificationID]
	if !ok || n.RecipientUserID != recipientUserID {
		return false, nil
	}
	n.IsRead = true
	r.byID[notificationID] = n
	return true, nil
}

func (r *memoryNotificationRepository) FindIDsByRecipient(ctx context.Context, recipientUserID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for id, n := range r.byID {
		if n.RecipientUserID == recipientUserID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *memoryNotificationRepository) DeleteByIDs(ctx context.Context, recipientUserID string, notificationIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for _, id := range notificationIDs {
		if n, ok := r.byID[id]; ok && n.RecipientUserID == recipientUserID {
			delete(r.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryNotificationRepository) DeleteRead(ctx context.Context, recipientUserID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, n := range r.byID {
		if n.RecipientUserID == recipientUserID && n.IsRead {
			delete(r.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryNotificationRepository) FindUnreadOlderThan(ctx context.Context, before time.Time) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Notification{}
	for _, n := range r.byID {
		if !n.IsRead && n.CreatedAt.Before(before) {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *memoryNotificationRepository) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Notification, 0, len(r.byID))
	for _, n := range r.byID {
		result = append(result, n)
	}
	return result
}

type pushedMessage struct {
	UserID  string
	Message *models.RealtimeMessage
}

type recordingRealtimePublisher struct {
	mu     sync.Mutex
	pushed []pushedMessage
	err    error
}

func (p *recordingRealtimePublisher) Publish(ctx context.Context, userID string, message *models.RealtimeMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, pushedMessage{UserID: userID, Message: message})
	return p.err
}

func (p *recordingRealtimePublisher) messages() []pushedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushedMessage(nil), p.pushed...)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) OnLifecycleEvent(ctx context.Context, event *models.LifecycleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockEventQueue struct {
	mock.Mock
}

func (m *MockEventQueue) Enqueue(ctx context.Context, input *contracts.EnqueueEventInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockEventQueue) EnqueueToDeadQueue(ctx context.Context, input *contracts.EnqueueEventInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockEventQueue) FetchN(ctx context.Context, input *contracts.FetchEventsInput) (*contracts.FetchEventsOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.FetchEventsOutput), args.Error(1)
}

func (m *MockEventQueue) Ack(ctx context.Context, deliveryTag uint64) error {
	args := m.Called(ctx, deliveryTag)
	return args.Error(0)
}

func (m *MockEventQueue) Nack(ctx context.Context, deliveryTag uint64, requeue bool) error {
	args := m.Called(ctx, deliveryTag, requeue)
	return args.Error(0)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLocker) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

func appointmentEvent(status models.AppointmentStatus, actorID, actorRole string) *models.LifecycleEvent {
	return &models.LifecycleEvent{
		EventID:       "evt-" + string(status),
		Kind:          models.LifecycleEventAppointment,
		AppointmentID: "A1",
		DoctorID:      "D1",
		PatientID:     "P1",
		PatientName:   "Asha",
		Date:          "2025-03-10",
		Time:          "10:30 AM",
		ToStatus:      string(status),
		ActorID:       actorID,
		ActorRole:     actorRole,
		OccurredAt:    time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC),
	}
}
