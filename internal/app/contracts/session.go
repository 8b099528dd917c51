package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
)

type SessionService interface {
	GetSessionData(ctx context.Context, sessionID string) (*models.Session, error)
}
