package job

import (
	"AlumniHub/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"
)

// 已读通知保留期
const notifyRetention = 90 * 24 * time.Hour

// NotificationCleanJob 清理超过保留期的已读通知
type NotificationCleanJob struct {
	notifyRepo mongo.NotificationRepo
}

func NewNotificationCleanJob(notifyRepo mongo.NotificationRepo) *NotificationCleanJob {
	return &NotificationCleanJob{
		notifyRepo: notifyRepo,
	}
}

func (s *NotificationCleanJob) Run() {
	ctx := context.Background()
	log.Info("start notification cleanup job")

	deadline := time.Now().Add(-notifyRetention)
	count, err := s.notifyRepo.DeleteReadBefore(ctx, deadline)
	if err != nil {
		log.Error("delete read notifications error", "err", err)
		return
	}

	if count > 0 {
		log.Info("notification cleanup job finished", "cleaned_count", count)
	}
}
