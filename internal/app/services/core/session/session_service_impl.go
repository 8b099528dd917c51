package session

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	now             func() time.Time
}

func NewSessionService(redisRepository contracts.RedisRepository) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		now:             time.Now,
	}
}

// GetSessionData loads the session stored by the authentication service.
func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (*models.Session, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, constvars.RedisSessionKeyPrefix+sessionID)
	if err != nil {
		return nil, exceptions.ErrRedisGet(err)
	}
	if sessionData == "" {
		return nil, exceptions.ErrSessionNotFound(nil)
	}

	session := new(models.Session)
	err = json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if session.UserID == "" || session.Role == "" {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	if !session.ExpiresAt.IsZero() && svc.now().After(session.ExpiresAt) {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	if session.SessionID == "" {
		session.SessionID = sessionID
	}
	return session, nil
}
