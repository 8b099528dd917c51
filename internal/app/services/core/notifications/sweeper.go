package notifications

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper deletes unread notifications past their retention on a cron
// schedule, on one instance at a time.
type Sweeper struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	locker  contracts.LockerService
	usecase contracts.NotificationUsecase
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewSweeper(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, usecase contracts.NotificationUsecase) *Sweeper {
	return &Sweeper{log: log, cfg: cfg, locker: lockerSvc, usecase: usecase}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.runCtx, s.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := s.cfg.Notification.SweepCronSpec
	_, err := c.AddFunc(spec, func() { s.runOnce(s.runCtx) })
	if err != nil {
		s.log.Warn("notifications.Sweeper invalid cron spec; falling back to hourly",
			zap.String("spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(constvars.DefaultNotificationSweepCronSpec, func() { s.runOnce(s.runCtx) })
	}
	c.Start()
	s.cron = c
}

// Stop waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	ttl := s.cfg.Notification.SweepLockTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	acquired, token, err := s.locker.TryLock(ctx, constvars.RedisNotificationSweepLockKey, ttl)
	if err != nil {
		s.log.Warn("notifications.Sweeper leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		s.log.Info("notifications.Sweeper leader lock not acquired; another instance is sweeping")
		return
	}
	defer s.locker.Unlock(ctx, constvars.RedisNotificationSweepLockKey, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := s.locker.Refresh(ctx, constvars.RedisNotificationSweepLockKey, token, ttl); err != nil {
					s.log.Warn("notifications.Sweeper failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	deleted, err := s.usecase.SweepStaleUnread(ctx)
	if err != nil {
		s.log.Error("notifications.Sweeper sweep failed", zap.Error(err))
		return
	}
	s.log.Info("notifications.Sweeper sweep finished", zap.Int64(constvars.LoggingCountKey, deleted))
}
