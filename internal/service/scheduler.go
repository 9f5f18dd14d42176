package service

import (
	"context"
	"fmt"
	"time"

	"trading-journal/config"
	"trading-journal/pkg/logger"

	"github.com/robfig/cron/v3"
)

type SchedulerService interface {
	Start() error
	Stop(ctx context.Context) error
	RunSnapshotJob(ctx context.Context) error
}

type schedulerService struct {
	cfg              *config.Config
	log              *logger.Logger
	cron             *cron.Cron
	analyticsService AnalyticsService
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	analyticsService AnalyticsService,
) SchedulerService {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &schedulerService{
		cfg:              cfg,
		log:              log,
		analyticsService: analyticsService,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// Start registers the snapshot job and starts the cron loop in the background.
// An empty schedule disables the job.
func (s *schedulerService) Start() error {
	if s.cfg.Scheduler.SnapshotCron == "" {
		s.log.Info("Snapshot job disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.SnapshotCron, func() {
		if err := s.RunSnapshotJob(context.Background()); err != nil {
			s.log.Error("Snapshot job failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot cron expression %q: %w", s.cfg.Scheduler.SnapshotCron, err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started", logger.StringField("snapshot_cron", s.cfg.Scheduler.SnapshotCron))
	return nil
}

// Stop waits for a running job to finish or for ctx to expire.
func (s *schedulerService) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *schedulerService) RunSnapshotJob(ctx context.Context) error {
	timeout := s.cfg.Scheduler.TimeoutDuration
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	captured, err := s.analyticsService.CaptureSnapshots(ctx)
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "Snapshot job completed",
		logger.IntField("captured", captured),
		logger.Field("duration", time.Since(start)),
	)
	return nil
}
