package controllers

import (
	"context"
	"errors"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

// requestScope pulls the request id and the authenticated session that the
// middlewares put on the context. It writes the error response itself and
// reports false when either is missing.
func requestScope(log *zap.Logger, w http.ResponseWriter, r *http.Request, method string) (string, *models.Session, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		log.Error(method + " requestID not found in context")
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", nil, false
	}

	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		log.Error(method+" sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingSessionData(nil))
		return "", nil, false
	}

	log.Info(method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingRoleKey, session.Role))
	return requestID, session, true
}

func requestTimeout(cfg *config.InternalConfig) time.Duration {
	if cfg == nil || cfg.App.RequestTimeoutInSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(cfg.App.RequestTimeoutInSeconds) * time.Second
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, requestID, method string, err error) {
	log.Error("Error in "+method,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))

	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
