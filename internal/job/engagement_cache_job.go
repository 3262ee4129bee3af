package job

import (
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/logger"
	"AlumniHub/internal/pkg/redis"
	"AlumniHub/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// EngagementCacheJob 定期重建脏内容的点赞/评论计数缓存
type EngagementCacheJob struct {
	engagementSvc service.EngagementService
}

func NewEngagementCacheJob(engagementSvc service.EngagementService) *EngagementCacheJob {
	return &EngagementCacheJob{
		engagementSvc: engagementSvc,
	}
}

func (s *EngagementCacheJob) Run() {
	traceID := "job-engagement-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.ContentDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.ContentDirtyKey, processingKey)
	if err != nil {
		return
	}

	contentIDs, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get content dirty set error", "err", err)
		return
	}

	log.InfoContext(ctx, "start rebuilding engagement counters", "count", len(contentIDs))

	successCount := 0
	for _, id := range contentIDs {
		// 先清缓存，读计数时回源重建
		if err = redis.DeleteKey(ctx, consts.ContentLikeKey+id); err != nil {
			log.ErrorContext(ctx, "evict like counter error", "contentID", id, "err", err)
			continue
		}
		if err = redis.DeleteKey(ctx, consts.ContentCommentKey+id); err != nil {
			log.ErrorContext(ctx, "evict comment counter error", "contentID", id, "err", err)
			continue
		}

		if _, err = s.engagementSvc.GetLikeCount(ctx, id); err != nil {
			log.ErrorContext(ctx, "rebuild like counter error", "contentID", id, "err", err)
			continue
		}
		if _, err = s.engagementSvc.GetCommentCount(ctx, id); err != nil {
			log.ErrorContext(ctx, "rebuild comment counter error", "contentID", id, "err", err)
			continue
		}
		successCount++
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set error", "err", err)
	}

	log.InfoContext(ctx, "rebuild engagement counters success",
		"total_count", len(contentIDs),
		"success_count", successCount)
}
