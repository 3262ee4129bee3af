package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"AlumniHub/internal/model"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/kafka"
	"AlumniHub/internal/pkg/mongo"
	appredis "AlumniHub/internal/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// 测试不依赖真实 Redis: 指向一个必然拒绝连接的地址，
// 计数缓存与频道广播这类尽力而为的调用会立即失败并被吞掉
func TestMain(m *testing.M) {
	appredis.Rdb = goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	os.Exit(m.Run())
}

type fakeContentRepo struct {
	mu    sync.Mutex
	items map[string]*mongo.ContentItem
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: make(map[string]*mongo.ContentItem)}
}

func (s *fakeContentRepo) Create(_ context.Context, item *mongo.ContentItem) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	item.ID = primitive.NewObjectID()
	item.Moderation = mongo.ModerationState{Status: consts.StatusPending}
	if item.LikedBy == nil {
		item.LikedBy = []uint64{}
	}
	if item.Comments == nil {
		item.Comments = []mongo.Comment{}
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID.Hex()] = item
	return item.ID.Hex(), nil
}

func (s *fakeContentRepo) GetByID(_ context.Context, id string) (*mongo.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, mongodriver.ErrNoDocuments
	}
	return item, nil
}

func (s *fakeContentRepo) ListByStatus(_ context.Context, kind string, status int8, _, _ int64) ([]*mongo.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*mongo.ContentItem
	for _, item := range s.items {
		if item.Moderation.Status != status {
			continue
		}
		if kind != "" && item.Kind != kind {
			continue
		}
		list = append(list, item)
	}
	return list, nil
}

func (s *fakeContentRepo) ListByAuthor(_ context.Context, authorID uint64, _, _ int64) ([]*mongo.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*mongo.ContentItem
	for _, item := range s.items {
		if item.AuthorID == authorID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (s *fakeContentRepo) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *fakeContentRepo) SetModeration(_ context.Context, id string, status int8, moderatorID uint64, reason *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	now := time.Now()
	item.Moderation.Status = status
	item.Moderation.ModeratedBy = &moderatorID
	item.Moderation.ModeratedAt = &now
	if status == consts.StatusRejected {
		stored := ""
		if reason != nil {
			stored = *reason
		}
		item.Moderation.RejectionReason = &stored
	} else {
		item.Moderation.RejectionReason = nil
	}
	return true, nil
}

func (s *fakeContentRepo) ResetModeration(_ context.Context, id string, payload mongo.ContentPayload) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	item.Payload = payload
	item.Moderation = mongo.ModerationState{Status: consts.StatusPending}
	return true, nil
}

func (s *fakeContentRepo) AddLike(_ context.Context, id string, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	for _, uid := range item.LikedBy {
		if uid == userID {
			return false, nil
		}
	}
	item.LikedBy = append(item.LikedBy, userID)
	return true, nil
}

func (s *fakeContentRepo) RemoveLike(_ context.Context, id string, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	for i, uid := range item.LikedBy {
		if uid == userID {
			item.LikedBy = append(item.LikedBy[:i], item.LikedBy[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeContentRepo) LikeCount(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return 0, mongodriver.ErrNoDocuments
	}
	return int64(len(item.LikedBy)), nil
}

func (s *fakeContentRepo) CommentCount(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return 0, mongodriver.ErrNoDocuments
	}
	return int64(len(item.Comments)), nil
}

func (s *fakeContentRepo) AppendComment(_ context.Context, id string, comment *mongo.Comment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	item.Comments = append(item.Comments, *comment)
	return true, nil
}

func (s *fakeContentRepo) AppendReply(_ context.Context, id, commentID string, reply *mongo.Reply) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	comment := item.FindComment(commentID)
	if comment == nil {
		return false, nil
	}
	comment.Replies = append(comment.Replies, *reply)
	return true, nil
}

func (s *fakeContentRepo) AddCommentReaction(_ context.Context, id, commentID string, reaction *mongo.Reaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	comment := item.FindComment(commentID)
	if comment == nil {
		return false, nil
	}
	for _, r := range comment.Reactions {
		if r.UserID == reaction.UserID {
			return false, nil
		}
	}
	comment.Reactions = append(comment.Reactions, *reaction)
	return true, nil
}

func (s *fakeContentRepo) RemoveCommentReaction(_ context.Context, id, commentID string, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	comment := item.FindComment(commentID)
	if comment == nil {
		return false, nil
	}
	for i, r := range comment.Reactions {
		if r.UserID == userID {
			comment.Reactions = append(comment.Reactions[:i], comment.Reactions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeGoalRepo struct {
	mu          sync.Mutex
	goals       map[string]*mongo.DonationGoal
	activateErr error
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[string]*mongo.DonationGoal)}
}

func (s *fakeGoalRepo) addGoal(goalType string, year int, month *int, amount int64, active bool) *mongo.DonationGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal := &mongo.DonationGoal{
		ID:       primitive.NewObjectID(),
		GoalType: goalType,
		Year:     year,
		Month:    month,
		Amount:   amount,
		IsActive: active,
	}
	s.goals[goal.ID.Hex()] = goal
	return goal
}

func (s *fakeGoalRepo) GetByID(_ context.Context, id string) (*mongo.DonationGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.goals[id]
	if !ok {
		return nil, mongodriver.ErrNoDocuments
	}
	return goal, nil
}

func (s *fakeGoalRepo) List(_ context.Context) ([]*mongo.DonationGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*mongo.DonationGoal
	for _, goal := range s.goals {
		list = append(list, goal)
	}
	return list, nil
}

func (s *fakeGoalRepo) Upsert(_ context.Context, goalType string, year int, month *int, amount int64) (*mongo.DonationGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, goal := range s.goals {
		if goal.GoalType != goalType || goal.Year != year {
			continue
		}
		if (goal.Month == nil) != (month == nil) {
			continue
		}
		if month != nil && *goal.Month != *month {
			continue
		}
		goal.Amount = amount
		return goal, nil
	}
	goal := &mongo.DonationGoal{
		ID:       primitive.NewObjectID(),
		GoalType: goalType,
		Year:     year,
		Month:    month,
		Amount:   amount,
	}
	s.goals[goal.ID.Hex()] = goal
	return goal, nil
}

func (s *fakeGoalRepo) Activate(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activateErr != nil {
		return false, s.activateErr
	}
	target, ok := s.goals[id]
	if !ok {
		return false, nil
	}
	for _, goal := range s.goals {
		if goal.GoalType == target.GoalType && goal.ID != target.ID {
			goal.IsActive = false
		}
	}
	target.IsActive = true
	return true, nil
}

func (s *fakeGoalRepo) Deactivate(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.goals[id]
	if !ok {
		return false, nil
	}
	goal.IsActive = false
	return true, nil
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	msgs  map[string]*mongo.Notification
	order []string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{msgs: make(map[string]*mongo.Notification)}
}

func (s *fakeNotificationRepo) Create(_ context.Context, msg *mongo.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	s.msgs[msg.ID.Hex()] = msg
	s.order = append(s.order, msg.ID.Hex())
	return nil
}

func (s *fakeNotificationRepo) GetList(_ context.Context, userID uint64, _, _ int64) ([]*mongo.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*mongo.Notification
	for i := len(s.order) - 1; i >= 0; i-- {
		if msg := s.msgs[s.order[i]]; msg != nil && msg.RecipientID == userID {
			list = append(list, msg)
		}
	}
	return list, nil
}

func (s *fakeNotificationRepo) MarkAsRead(_ context.Context, userID uint64, msgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.msgs[msgID]
	if !ok || msg.RecipientID != userID {
		return mongodriver.ErrNoDocuments
	}
	msg.IsRead = true
	return nil
}

func (s *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range s.msgs {
		if msg.RecipientID == userID {
			msg.IsRead = true
		}
	}
	return nil
}

func (s *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, msg := range s.msgs {
		if msg.RecipientID == userID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationRepo) DeleteReadBefore(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, msg := range s.msgs {
		if msg.IsRead && msg.CreatedAt.Before(before) {
			delete(s.msgs, id)
			count++
		}
	}
	return count, nil
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	audits []*model.ModerationAudit
}

func (s *fakeAuditRepo) Create(_ context.Context, audit *model.ModerationAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	audit.ID = uint64(len(s.audits) + 1)
	s.audits = append(s.audits, audit)
	return nil
}

func (s *fakeAuditRepo) GetByContentID(_ context.Context, contentID string, _, _ int) ([]*model.ModerationAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.ModerationAudit
	for _, audit := range s.audits {
		if audit.ContentID == contentID {
			list = append(list, audit)
		}
	}
	return list, nil
}

func (s *fakeAuditRepo) GetByModeratorID(_ context.Context, moderatorID uint64, _, _ int) ([]*model.ModerationAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.ModerationAudit
	for _, audit := range s.audits {
		if audit.ModeratorID == moderatorID {
			list = append(list, audit)
		}
	}
	return list, nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []*kafka.ModerationEvent
}

func (s *fakeDispatcher) Enqueue(_ context.Context, event *kafka.ModerationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *fakeDispatcher) Close() error {
	return nil
}
