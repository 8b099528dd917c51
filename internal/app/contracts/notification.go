package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
	"time"
)

type NotificationRepository interface {
	// Insert fails with a DuplicateError when the id is taken.
	Insert(ctx context.Context, notification *models.Notification) error
	// FindByRecipients lists the newest notifications addressed to any of
	// the given inboxes.
	FindByRecipients(ctx context.Context, recipientUserIDs []string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientUserID string) (bool, error)
	FindIDsByRecipient(ctx context.Context, recipientUserID string) ([]string, error)
	DeleteByIDs(ctx context.Context, recipientUserID string, notificationIDs []string) (int64, error)
	DeleteRead(ctx context.Context, recipientUserID string) (int64, error)
	FindUnreadOlderThan(ctx context.Context, before time.Time) ([]models.Notification, error)
}

type NotificationDispatcher interface {
	OnLifecycleEvent(ctx context.Context, event *models.LifecycleEvent) error
}

// LifecycleEventPublisher hands committed lifecycle events to the dispatcher,
// falling back to the retry queue when the dispatcher cannot persist.
type LifecycleEventPublisher interface {
	Publish(ctx context.Context, event *models.LifecycleEvent) error
}

type NotificationUsecase interface {
	ListMine(ctx context.Context, session *models.Session) ([]models.Notification, error)
	MarkRead(ctx context.Context, session *models.Session, notificationID string) error
	MarkAllRead(ctx context.Context, session *models.Session) (int64, error)
	DeleteRead(ctx context.Context, session *models.Session) (int64, error)
	ReadAndDiscard(ctx context.Context, session *models.Session, notificationID string) error
	SweepStaleUnread(ctx context.Context) (int64, error)
}
