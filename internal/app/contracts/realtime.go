package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
)

type RealtimePublisher interface {
	Publish(ctx context.Context, userID string, message *models.RealtimeMessage) error
}
