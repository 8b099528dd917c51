package controllers

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/responses"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
	InternalConfig      *config.InternalConfig
}

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase, internalConfig *config.InternalConfig) *NotificationController {
	return &NotificationController{
		Log:                 logger,
		NotificationUsecase: notificationUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *NotificationController) ListMine(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "NotificationController.ListMine")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	notifications, err := ctrl.NotificationUsecase.ListMine(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "NotificationUsecase.ListMine", err)
		return
	}

	ctrl.Log.Info("NotificationController.ListMine succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(notifications)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetNotificationsSuccessMessage, notifications)
}

func (ctrl *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "NotificationController.MarkRead")
	if !ok {
		return
	}

	notificationID := chi.URLParam(r, constvars.URLParamNotificationID)
	if notificationID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamNotificationID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	if err := ctrl.NotificationUsecase.MarkRead(ctx, session, notificationID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "NotificationUsecase.MarkRead", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MarkNotificationReadSuccessMessage, nil)
}

// MarkAllRead deletes every notification of the caller once it is read.
func (ctrl *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "NotificationController.MarkAllRead")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	deleted, err := ctrl.NotificationUsecase.MarkAllRead(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "NotificationUsecase.MarkAllRead", err)
		return
	}

	ctrl.Log.Info("NotificationController.MarkAllRead succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingCountKey, deleted))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MarkAllNotificationsSuccessMessage, &responses.DeletedCount{DeletedCount: deleted})
}

func (ctrl *NotificationController) DeleteRead(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "NotificationController.DeleteRead")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	deleted, err := ctrl.NotificationUsecase.DeleteRead(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "NotificationUsecase.DeleteRead", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteReadNotificationsSuccessMsg, &responses.DeletedCount{DeletedCount: deleted})
}
