package cron

import (
	"AlumniHub/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine               *cron.Cron
	engagementCacheJob   *job.EngagementCacheJob
	notificationCleanJob *job.NotificationCleanJob
}

func NewCronManager(
	engagementCacheJob *job.EngagementCacheJob,
	notificationCleanJob *job.NotificationCleanJob,
) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds()),
		engagementCacheJob:   engagementCacheJob,
		notificationCleanJob: notificationCleanJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("0 */5 * * * *", s.engagementCacheJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.notificationCleanJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
