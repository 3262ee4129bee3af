package kafka

import (
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/mongo"
	"AlumniHub/internal/pkg/redis"
	"AlumniHub/internal/pkg/webhook"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const eventDedupTTL = 24 * time.Hour

// NotificationSink 审核事件的落库端，由通知服务实现
type NotificationSink interface {
	CreateFromEvent(ctx context.Context, event *ModerationEvent) (*mongo.Notification, error)
}

// NotifyHandler 消费审核事件: 落站内信、推外部网关、广播给在线连接
type NotifyHandler struct {
	sink   NotificationSink
	pusher webhook.Pusher
}

func NewNotifyHandler(sink NotificationSink, pusher webhook.Pusher) *NotifyHandler {
	return &NotifyHandler{
		sink:   sink,
		pusher: pusher,
	}
}

func (s *NotifyHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("moderation notify consumer setup")
	return nil
}

func (s *NotifyHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("moderation notify consumer cleanup")
	return nil
}

func (s *NotifyHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("moderation notify consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("moderation notify process batch error", "err", err)
		return err
	}
	return nil
}

func (s *NotifyHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToModerationEvent(msg)
	if err != nil {
		// 消息体损坏不可恢复，跳过而不是无限重试
		return nil
	}

	// 消费端按事件ID去重，重复投递只落一次库
	dedupKey := consts.IdempotencyKey + event.EventID
	fresh, err := redis.SetNX(ctx, dedupKey, 1, eventDedupTTL)
	claimed := err == nil && fresh
	if err != nil {
		log.WarnContext(ctx, "event dedup check error", "eventID", event.EventID, "err", err)
	} else if !fresh {
		log.InfoContext(ctx, "duplicate moderation event, skip", "eventID", event.EventID)
		return nil
	}

	notify, err := s.sink.CreateFromEvent(ctx, event)
	if err != nil {
		// 落库失败要撤掉去重标记，否则批次重试会被当成重复投递跳过
		if claimed {
			if delErr := redis.DeleteKey(ctx, dedupKey); delErr != nil {
				log.WarnContext(ctx, "release event dedup key error", "eventID", event.EventID, "err", delErr)
			}
		}
		log.ErrorContext(ctx, "create notification error", "eventID", event.EventID, "err", err)
		return err
	}

	// 外部推送尽力而为，失败不影响消息确认
	if err = s.pusher.Push(ctx, event); err != nil {
		log.WarnContext(ctx, "push webhook error", "eventID", event.EventID, "err", err)
	}

	s.broadcast(ctx, notify)

	log.InfoContext(ctx, "moderation event consumed",
		"eventID", event.EventID, "contentID", event.ContentID, "decision", event.Decision)
	return nil
}

// broadcast 向作者的个人频道广播，在线连接实时收到新通知
func (s *NotifyHandler) broadcast(ctx context.Context, notify *mongo.Notification) {
	payload, _ := json.Marshal(map[string]any{
		"id":       notify.ID.Hex(),
		"type":     notify.Type,
		"targetId": notify.TargetID,
		"content":  notify.Content,
	})
	channel := consts.UserNotifyChannel + fmt.Sprint(notify.RecipientID)
	if err := redis.Publish(ctx, channel, payload); err != nil {
		log.WarnContext(ctx, "broadcast notification error", "channel", channel, "err", err)
	}
}
