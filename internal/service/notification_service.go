package service

import (
	"context"
	"time"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/kafka"
	"AlumniHub/internal/pkg/mongo"
)

type NotificationService interface {
	CreateFromEvent(ctx context.Context, event *kafka.ModerationEvent) (*mongo.Notification, error)
	GetList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, userID uint64, notifyID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notifyRepo mongo.NotificationRepo
}

func NewNotificationService(notifyRepo mongo.NotificationRepo) NotificationService {
	return &notificationServiceImpl{
		notifyRepo: notifyRepo,
	}
}

// CreateFromEvent 将审核事件落为作者的一条通知
func (s *notificationServiceImpl) CreateFromEvent(ctx context.Context, event *kafka.ModerationEvent) (*mongo.Notification, error) {
	notifyType := consts.NotifyTypeContentApproved
	payload := map[string]any{
		"kind":    event.Kind,
		"eventId": event.EventID,
	}
	if event.Decision == consts.DecisionReject {
		notifyType = consts.NotifyTypeContentRejected
		payload["reason"] = event.Reason
	}

	msg := &mongo.Notification{
		RecipientID: event.AuthorID,
		Type:        notifyType,
		TargetID:    event.ContentID,
		Content:     event.Preview,
		Payload:     payload,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
	if err := s.notifyRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *notificationServiceImpl) GetList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	limit, offset := pageToRange(page, pageSize)
	list, err := s.notifyRepo.GetList(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, msg := range list {
		res = append(res, &dto.NotificationDTO{
			ID:        msg.ID.Hex(),
			Type:      msg.Type,
			TargetID:  msg.TargetID,
			Content:   msg.Content,
			Payload:   msg.Payload,
			IsRead:    msg.IsRead,
			CreatedAt: msg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return res, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.notifyRepo.GetUnreadCount(ctx, userID)
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, notifyID string) error {
	err := s.notifyRepo.MarkAsRead(ctx, userID, notifyID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return ErrNotifyNotFound
		}
		return err
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notifyRepo.MarkAllAsRead(ctx, userID)
}
