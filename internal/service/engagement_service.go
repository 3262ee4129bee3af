package service

import (
	"context"
	log "log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/mongo"
	"AlumniHub/internal/pkg/redis"

	"github.com/google/uuid"
)

const (
	commentMaxLen   = 1000
	cacheExpiration = 7 * 24 * time.Hour
)

type EngagementService interface {
	ToggleLike(ctx context.Context, userID uint64, contentID string) (bool, error)
	GetLikeCount(ctx context.Context, contentID string) (int64, error)
	GetCommentCount(ctx context.Context, contentID string) (int64, error)

	AddComment(ctx context.Context, userID uint64, userName string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	AddReply(ctx context.Context, userID uint64, userName string, req *dto.ReplyCreateDTO) (*dto.ReplyDTO, error)
	ToggleCommentReaction(ctx context.Context, userID uint64, userName string, req *dto.ReactionDTO) (bool, error)
}

type engagementServiceImpl struct {
	contentRepo mongo.ContentRepo
}

func NewEngagementService(contentRepo mongo.ContentRepo) EngagementService {
	return &engagementServiceImpl{
		contentRepo: contentRepo,
	}
}

// ToggleLike 点赞开关: 不在集合中则加入，已在集合中则移出
// 两步都是存储端的原子集合原语，并发写不会丢失更新；连续两次调用恢复原状
func (s *engagementServiceImpl) ToggleLike(ctx context.Context, userID uint64, contentID string) (bool, error) {
	added, err := s.contentRepo.AddLike(ctx, contentID, userID)
	if err != nil {
		return false, err
	}
	if !added {
		removed, err := s.contentRepo.RemoveLike(ctx, contentID, userID)
		if err != nil {
			return false, err
		}
		if !removed {
			// 加入与移出都未命中，说明文档本身不存在
			return false, ErrContentNotFound
		}
	}

	s.markDirtyAndNotify(ctx, contentID, "like")
	return added, nil
}

func (s *engagementServiceImpl) GetLikeCount(ctx context.Context, contentID string) (int64, error) {
	key := consts.ContentLikeKey + contentID
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.contentRepo.LikeCount(ctx, contentID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return 0, ErrContentNotFound
		}
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *engagementServiceImpl) GetCommentCount(ctx context.Context, contentID string) (int64, error) {
	key := consts.ContentCommentKey + contentID
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.contentRepo.CommentCount(ctx, contentID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return 0, ErrContentNotFound
		}
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

// AddComment 追加评论，存储顺序即提交顺序，展示序由前端决定
func (s *engagementServiceImpl) AddComment(ctx context.Context, userID uint64, userName string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if err := validateText(req.Content); err != nil {
		return nil, err
	}

	comment := &mongo.Comment{
		ID:         uuid.NewString(),
		ContentID:  req.ContentID,
		AuthorID:   userID,
		AuthorName: userName,
		Content:    req.Content,
		Reactions:  []mongo.Reaction{},
		Replies:    []mongo.Reply{},
		CreatedAt:  time.Now(),
	}

	ok, err := s.contentRepo.AppendComment(ctx, req.ContentID, comment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrContentNotFound
	}

	s.markDirtyAndNotify(ctx, req.ContentID, "comment")
	return convertToCommentDTO(comment), nil
}

// AddReply 在指定评论下追加回复，不触碰评论的反应集合
func (s *engagementServiceImpl) AddReply(ctx context.Context, userID uint64, userName string, req *dto.ReplyCreateDTO) (*dto.ReplyDTO, error) {
	if err := validateText(req.Content); err != nil {
		return nil, err
	}

	reply := &mongo.Reply{
		ID:         uuid.NewString(),
		CommentID:  req.CommentID,
		AuthorID:   userID,
		AuthorName: userName,
		Content:    req.Content,
		CreatedAt:  time.Now(),
	}

	ok, err := s.contentRepo.AppendReply(ctx, req.ContentID, req.CommentID, reply)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 区分内容缺失与评论缺失
		if _, err = s.contentRepo.GetByID(ctx, req.ContentID); err != nil {
			if mongo.IsNotFound(err) {
				return nil, ErrContentNotFound
			}
			return nil, err
		}
		return nil, ErrCommentNotFound
	}

	publishContentChange(ctx, req.ContentID, "reply")

	dtoItem := &dto.ReplyDTO{
		ID:         reply.ID,
		CommentID:  reply.CommentID,
		AuthorID:   reply.AuthorID,
		AuthorName: reply.AuthorName,
		Content:    reply.Content,
		CreatedAt:  reply.CreatedAt,
	}
	return dtoItem, nil
}

// ToggleCommentReaction 评论反应开关，成员携带昵称以免展示时二次查询
func (s *engagementServiceImpl) ToggleCommentReaction(ctx context.Context, userID uint64, userName string, req *dto.ReactionDTO) (bool, error) {
	reaction := &mongo.Reaction{
		UserID:   userID,
		UserName: userName,
		Type:     consts.ReactionTypeLike,
	}

	added, err := s.contentRepo.AddCommentReaction(ctx, req.ContentID, req.CommentID, reaction)
	if err != nil {
		return false, err
	}
	if !added {
		removed, err := s.contentRepo.RemoveCommentReaction(ctx, req.ContentID, req.CommentID, userID)
		if err != nil {
			return false, err
		}
		if !removed {
			item, err := s.contentRepo.GetByID(ctx, req.ContentID)
			if err != nil {
				if mongo.IsNotFound(err) {
					return false, ErrContentNotFound
				}
				return false, err
			}
			if item.FindComment(req.CommentID) == nil {
				return false, ErrCommentNotFound
			}
			// 评论存在但两步都未命中: 与并发写撞车，本次视作已移出
		}
	}

	publishContentChange(ctx, req.ContentID, "reaction")
	return added, nil
}

func (s *engagementServiceImpl) markDirtyAndNotify(ctx context.Context, contentID string, event string) {
	if err := redis.SAdd(ctx, consts.ContentDirtyKey, contentID); err != nil {
		log.WarnContext(ctx, "mark content dirty error", "contentID", contentID, "err", err)
	}
	publishContentChange(ctx, contentID, event)
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrCommentEmpty
	}
	if utf8.RuneCountInString(text) > commentMaxLen {
		return ErrCommentTooLong
	}
	return nil
}

func convertToCommentDTO(comment *mongo.Comment) *dto.CommentDTO {
	dtoItem := &dto.CommentDTO{
		ID:         comment.ID,
		ContentID:  comment.ContentID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
	for _, r := range comment.Reactions {
		dtoItem.Reactions = append(dtoItem.Reactions, dto.ReactionItemDTO{
			UserID:   r.UserID,
			UserName: r.UserName,
			Type:     r.Type,
		})
	}
	for _, reply := range comment.Replies {
		dtoItem.Replies = append(dtoItem.Replies, dto.ReplyDTO{
			ID:         reply.ID,
			CommentID:  reply.CommentID,
			AuthorID:   reply.AuthorID,
			AuthorName: reply.AuthorName,
			Content:    reply.Content,
			CreatedAt:  reply.CreatedAt,
		})
	}
	return dtoItem
}
