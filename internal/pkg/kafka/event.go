package kafka

import (
	"context"
	"time"
)

// ModerationEvent 审核结果事件，经由消息队列送达通知消费者
type ModerationEvent struct {
	EventID     string    `json:"eventId"`
	ContentID   string    `json:"contentId"`
	Kind        string    `json:"kind"`
	AuthorID    uint64    `json:"authorId"`
	ModeratorID uint64    `json:"moderatorId"`
	Decision    int8      `json:"decision"` // 1:通过, 2:拒绝
	Reason      string    `json:"reason,omitempty"`
	Preview     string    `json:"preview"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Dispatcher 审核事件投递端
// 投递是尽力而为的: 失败由调用方记日志，绝不影响审核调用本身的结果
type Dispatcher interface {
	Enqueue(ctx context.Context, event *ModerationEvent) error
	Close() error
}
