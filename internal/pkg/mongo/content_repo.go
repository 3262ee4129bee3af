package mongo

import (
	"context"
	"errors"
	"time"

	"AlumniHub/internal/pkg/consts"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContentRepo interface {
	Create(ctx context.Context, item *ContentItem) (string, error)
	GetByID(ctx context.Context, id string) (*ContentItem, error)
	ListByStatus(ctx context.Context, kind string, status int8, limit, offset int64) ([]*ContentItem, error)
	ListByAuthor(ctx context.Context, authorID uint64, limit, offset int64) ([]*ContentItem, error)
	Delete(ctx context.Context, id string) (bool, error)

	SetModeration(ctx context.Context, id string, status int8, moderatorID uint64, reason *string) (bool, error)
	ResetModeration(ctx context.Context, id string, payload ContentPayload) (bool, error)

	AddLike(ctx context.Context, id string, userID uint64) (bool, error)
	RemoveLike(ctx context.Context, id string, userID uint64) (bool, error)
	LikeCount(ctx context.Context, id string) (int64, error)
	CommentCount(ctx context.Context, id string) (int64, error)

	AppendComment(ctx context.Context, id string, comment *Comment) (bool, error)
	AppendReply(ctx context.Context, id, commentID string, reply *Reply) (bool, error)
	AddCommentReaction(ctx context.Context, id, commentID string, reaction *Reaction) (bool, error)
	RemoveCommentReaction(ctx context.Context, id, commentID string, userID uint64) (bool, error)
}

type contentRepoImpl struct {
	col *mongo.Collection
}

func NewContentRepo(db *mongo.Database) ContentRepo {
	return &contentRepoImpl{
		col: db.Collection("contents"),
	}
}

// Create 插入新内容，初始状态固定为待审核
func (s *contentRepoImpl) Create(ctx context.Context, item *ContentItem) (string, error) {
	now := time.Now()
	item.ID = primitive.NewObjectID()
	item.Moderation = ModerationState{Status: consts.StatusPending}
	if item.LikedBy == nil {
		item.LikedBy = []uint64{}
	}
	if item.Comments == nil {
		item.Comments = []Comment{}
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := s.col.InsertOne(ctx, item); err != nil {
		return "", err
	}
	return item.ID.Hex(), nil
}

func (s *contentRepoImpl) GetByID(ctx context.Context, id string) (*ContentItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var item ContentItem
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByStatus 按状态分页列出内容 (kind 为空时不区分类型，按时间倒序)
func (s *contentRepoImpl) ListByStatus(ctx context.Context, kind string, status int8, limit, offset int64) ([]*ContentItem, error) {
	filter := bson.M{"moderation.status": status}
	if kind != "" {
		filter["kind"] = kind
	}
	return s.list(ctx, filter, limit, offset)
}

func (s *contentRepoImpl) ListByAuthor(ctx context.Context, authorID uint64, limit, offset int64) ([]*ContentItem, error) {
	return s.list(ctx, bson.M{"author_id": authorID}, limit, offset)
}

func (s *contentRepoImpl) list(ctx context.Context, filter bson.M, limit, offset int64) ([]*ContentItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*ContentItem
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *contentRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// SetModeration 单次原子更新完成状态迁移
// 通过时同步清除遗留的拒绝原因，拒绝时写入本次原因
func (s *contentRepoImpl) SetModeration(ctx context.Context, id string, status int8, moderatorID uint64, reason *string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	now := time.Now()
	set := bson.M{
		"moderation.status":       status,
		"moderation.moderated_by": moderatorID,
		"moderation.moderated_at": now,
		"updated_at":              now,
	}
	update := bson.M{"$set": set}
	if status == consts.StatusRejected {
		stored := ""
		if reason != nil {
			stored = *reason
		}
		set["moderation.rejection_reason"] = stored
	} else {
		update["$unset"] = bson.M{"moderation.rejection_reason": ""}
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ResetModeration 作者重新编辑后回到待审核，清空全部审核痕迹
func (s *contentRepoImpl) ResetModeration(ctx context.Context, id string, payload ContentPayload) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	update := bson.M{
		"$set": bson.M{
			"payload":           payload,
			"moderation.status": consts.StatusPending,
			"updated_at":        time.Now(),
		},
		"$unset": bson.M{
			"moderation.moderated_by":     "",
			"moderation.moderated_at":     "",
			"moderation.rejection_reason": "",
		},
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// AddLike 原子加入点赞集合
// 过滤条件排除已点赞文档，返回 false 表示已在集合中（或文档不存在）
func (s *contentRepoImpl) AddLike(ctx context.Context, id string, userID uint64) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	filter := bson.M{"_id": oid, "liked_by": bson.M{"$ne": userID}}
	update := bson.M{"$addToSet": bson.M{"liked_by": userID}}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// RemoveLike 原子移出点赞集合
func (s *contentRepoImpl) RemoveLike(ctx context.Context, id string, userID uint64) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	filter := bson.M{"_id": oid, "liked_by": userID}
	update := bson.M{"$pull": bson.M{"liked_by": userID}}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *contentRepoImpl) LikeCount(ctx context.Context, id string) (int64, error) {
	return s.arrayCount(ctx, id, "$liked_by")
}

func (s *contentRepoImpl) CommentCount(ctx context.Context, id string) (int64, error) {
	return s.arrayCount(ctx, id, "$comments")
}

func (s *contentRepoImpl) arrayCount(ctx context.Context, id string, field string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, mongo.ErrNoDocuments
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
		{{Key: "$project", Value: bson.M{
			"n": bson.M{"$size": bson.M{"$ifNull": bson.A{field, bson.A{}}}},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		N int64 `bson:"n"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return rows[0].N, nil
}

// AppendComment 原子追加评论，存储顺序即插入顺序
func (s *contentRepoImpl) AppendComment(ctx context.Context, id string, comment *Comment) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// AppendReply 原子追加回复到指定评论，评论不存在时返回 false
func (s *contentRepoImpl) AppendReply(ctx context.Context, id, commentID string, reply *Reply) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	filter := bson.M{"_id": oid, "comments.id": commentID}
	update := bson.M{
		"$push": bson.M{"comments.$.replies": reply},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// AddCommentReaction 原子加入评论反应集合
// $elemMatch 同时校验评论存在且该用户尚未反应，竞争写不会产生重复成员
func (s *contentRepoImpl) AddCommentReaction(ctx context.Context, id, commentID string, reaction *Reaction) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	filter := bson.M{
		"_id": oid,
		"comments": bson.M{"$elemMatch": bson.M{
			"id":                commentID,
			"reactions.user_id": bson.M{"$ne": reaction.UserID},
		}},
	}
	update := bson.M{"$push": bson.M{"comments.$.reactions": reaction}}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// RemoveCommentReaction 原子移出评论反应集合
func (s *contentRepoImpl) RemoveCommentReaction(ctx context.Context, id, commentID string, userID uint64) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	filter := bson.M{
		"_id": oid,
		"comments": bson.M{"$elemMatch": bson.M{
			"id":                commentID,
			"reactions.user_id": userID,
		}},
	}
	update := bson.M{"$pull": bson.M{"comments.$.reactions": bson.M{"user_id": userID}}}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// IsNotFound 判定驱动层的未命中错误
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
