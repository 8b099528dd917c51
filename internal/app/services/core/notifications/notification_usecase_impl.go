package notifications

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	RealtimePublisher      contracts.RealtimePublisher
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
	now                    func() time.Time
}

var (
	notificationUsecaseInstance contracts.NotificationUsecase
	onceNotificationUsecase     sync.Once
)

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	realtimePublisher contracts.RealtimePublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	onceNotificationUsecase.Do(func() {
		notificationUsecaseInstance = &notificationUsecase{
			NotificationRepository: notificationRepository,
			RealtimePublisher:      realtimePublisher,
			InternalConfig:         internalConfig,
			Log:                    logger,
			now:                    time.Now,
		}
	})
	return notificationUsecaseInstance
}

func (uc *notificationUsecase) ListMine(ctx context.Context, session *models.Session) ([]models.Notification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.ListMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	limit := constvars.DefaultNotificationListLimit
	if uc.InternalConfig != nil && uc.InternalConfig.Notification.ListLimit > 0 {
		limit = uc.InternalConfig.Notification.ListLimit
	}
	return uc.NotificationRepository.FindByRecipients(ctx, inboxes(session), int64(limit))
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
	)

	_, err := uc.markRead(ctx, session, notificationID)
	return err
}

// MarkAllRead marks every notification of the caller as read, which removes
// them, and tells the caller's open connections about each removal.
func (uc *notificationUsecase) MarkAllRead(ctx context.Context, session *models.Session) (int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkAllRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	var total int64
	for _, inbox := range inboxes(session) {
		ids, err := uc.NotificationRepository.FindIDsByRecipient(ctx, inbox)
		if err != nil {
			return total, err
		}
		deleted, err := uc.NotificationRepository.DeleteByIDs(ctx, inbox, ids)
		if err != nil {
			return total, err
		}
		total += deleted
		for _, id := range ids {
			uc.pushDeleted(ctx, inbox, id)
		}
	}
	return total, nil
}

func (uc *notificationUsecase) DeleteRead(ctx context.Context, session *models.Session) (int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.DeleteRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	var total int64
	for _, inbox := range inboxes(session) {
		deleted, err := uc.NotificationRepository.DeleteRead(ctx, inbox)
		if err != nil {
			return total, err
		}
		total += deleted
	}
	return total, nil
}

// ReadAndDiscard backs the realtime readNotification event.
func (uc *notificationUsecase) ReadAndDiscard(ctx context.Context, session *models.Session, notificationID string) error {
	uc.Log.Info("notificationUsecase.ReadAndDiscard called",
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
	)

	inbox, err := uc.markRead(ctx, session, notificationID)
	if err != nil {
		return err
	}
	if _, err := uc.NotificationRepository.DeleteByIDs(ctx, inbox, []string{notificationID}); err != nil {
		return err
	}
	uc.pushDeleted(ctx, inbox, notificationID)
	return nil
}

// markRead returns the inbox that held the notification.
func (uc *notificationUsecase) markRead(ctx context.Context, session *models.Session, notificationID string) (string, error) {
	for _, inbox := range inboxes(session) {
		found, err := uc.NotificationRepository.MarkRead(ctx, notificationID, inbox)
		if err != nil {
			return "", err
		}
		if found {
			return inbox, nil
		}
	}
	return "", exceptions.ErrNotificationNotFound(nil, notificationID)
}

// inboxes lists the recipients whose notifications the session may see.
// Hospital and admin accounts share the reviewer inbox.
func inboxes(session *models.Session) []string {
	switch session.Role {
	case constvars.RoleHospital, constvars.RoleAdmin:
		return []string{session.UserID, constvars.ReviewerRoom}
	default:
		return []string{session.UserID}
	}
}

// SweepStaleUnread removes notifications nobody opened within the retention
// window.
func (uc *notificationUsecase) SweepStaleUnread(ctx context.Context) (int64, error) {
	retention := constvars.DefaultNotificationUnreadRetention * time.Hour
	if uc.InternalConfig != nil && uc.InternalConfig.Notification.UnreadRetention > 0 {
		retention = uc.InternalConfig.Notification.UnreadRetention
	}
	before := uc.now().Add(-retention)

	stale, err := uc.NotificationRepository.FindUnreadOlderThan(ctx, before)
	if err != nil {
		return 0, err
	}

	byRecipient := make(map[string][]string)
	for _, notification := range stale {
		byRecipient[notification.RecipientUserID] = append(byRecipient[notification.RecipientUserID], notification.ID)
	}

	var total int64
	for recipient, ids := range byRecipient {
		deleted, err := uc.NotificationRepository.DeleteByIDs(ctx, recipient, ids)
		if err != nil {
			uc.Log.Error("notificationUsecase.SweepStaleUnread error deleting notifications",
				zap.String(constvars.LoggingRecipientIDKey, recipient),
				zap.Error(err),
			)
			continue
		}
		total += deleted
		for _, id := range ids {
			uc.pushDeleted(ctx, recipient, id)
		}
	}

	uc.Log.Info("notificationUsecase.SweepStaleUnread finished",
		zap.Time("before", before),
		zap.Int64(constvars.LoggingCountKey, total),
	)
	return total, nil
}

func (uc *notificationUsecase) pushDeleted(ctx context.Context, userID, notificationID string) {
	if uc.RealtimePublisher == nil {
		return
	}
	err := uc.RealtimePublisher.Publish(ctx, userID, &models.RealtimeMessage{
		Event: constvars.RealtimeEventNotificationDeleted,
		Data:  notificationID,
	})
	if err != nil {
		uc.Log.Debug("notificationUsecase.pushDeleted not delivered",
			zap.String(constvars.LoggingRecipientIDKey, userID),
			zap.String(constvars.LoggingNotificationIDKey, notificationID),
			zap.Error(err),
		)
	}
}
