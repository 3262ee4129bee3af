package service

import (
	"context"
	"strings"
	"testing"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/mongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedContent(t *testing.T, repo *fakeContentRepo, authorID uint64) string {
	t.Helper()
	item := &mongo.ContentItem{
		Kind:       consts.KindPost,
		AuthorID:   authorID,
		AuthorName: "张伟",
		Payload:    mongo.ContentPayload{Title: "校友返校日", Body: "欢迎各届校友报名参加"},
	}
	id, err := repo.Create(context.Background(), item)
	require.NoError(t, err)
	return id
}

func TestToggleLike(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewEngagementService(repo)
	ctx := context.Background()
	contentID := seedContent(t, repo, 1)

	// 第一次: 加入
	active, err := svc.ToggleLike(ctx, 42, contentID)
	require.NoError(t, err)
	assert.True(t, active)

	item, _ := repo.GetByID(ctx, contentID)
	assert.Equal(t, []uint64{42}, item.LikedBy)

	// 第二次: 移出，恢复原状
	active, err = svc.ToggleLike(ctx, 42, contentID)
	require.NoError(t, err)
	assert.False(t, active)

	item, _ = repo.GetByID(ctx, contentID)
	assert.Empty(t, item.LikedBy)

	// 互不影响的另一个用户
	_, err = svc.ToggleLike(ctx, 43, contentID)
	require.NoError(t, err)
	item, _ = repo.GetByID(ctx, contentID)
	assert.Equal(t, []uint64{43}, item.LikedBy)
}

func TestToggleLikeContentMissing(t *testing.T) {
	svc := NewEngagementService(newFakeContentRepo())

	_, err := svc.ToggleLike(context.Background(), 42, "652f8aeb9d2f1b3c4d5e6f70")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestAddComment(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewEngagementService(repo)
	ctx := context.Background()
	contentID := seedContent(t, repo, 1)

	first, err := svc.AddComment(ctx, 10, "李娜", &dto.CommentCreateDTO{ContentID: contentID, Content: "写得真好"})
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, 11, "王强", &dto.CommentCreateDTO{ContentID: contentID, Content: "期待线下见"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	// 存储顺序即提交顺序
	item, _ := repo.GetByID(ctx, contentID)
	require.Len(t, item.Comments, 2)
	assert.Equal(t, first.ID, item.Comments[0].ID)
	assert.Equal(t, second.ID, item.Comments[1].ID)
	assert.Equal(t, "李娜", item.Comments[0].AuthorName)
}

func TestAddCommentValidation(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewEngagementService(repo)
	ctx := context.Background()
	contentID := seedContent(t, repo, 1)

	_, err := svc.AddComment(ctx, 10, "李娜", &dto.CommentCreateDTO{ContentID: contentID, Content: "   "})
	assert.ErrorIs(t, err, ErrCommentEmpty)

	_, err = svc.AddComment(ctx, 10, "李娜", &dto.CommentCreateDTO{ContentID: contentID, Content: strings.Repeat("赞", commentMaxLen+1)})
	assert.ErrorIs(t, err, ErrCommentTooLong)

	_, err = svc.AddComment(ctx, 10, "李娜", &dto.CommentCreateDTO{ContentID: "652f8aeb9d2f1b3c4d5e6f70", Content: "好"})
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestAddReply(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewEngagementService(repo)
	ctx := context.Background()
	contentID := seedContent(t, repo, 1)

	comment, err := svc.AddComment(ctx, 10, "李娜", &dto.CommentCreateDTO{ContentID: contentID, Content: "写得真好"})
	require.NoError(t, err)

	reply, err := svc.AddReply(ctx, 11, "王强", &dto.ReplyCreateDTO{ContentID: contentID, CommentID: comment.ID, Content: "同感"})
	require.NoError(t, err)
	assert.Equal(t, comment.ID, reply.CommentID)

	// 回复只挂在目标评论下，不触碰反应集合
	item, _ := repo.GetByID(ctx, contentID)
	stored := item.FindComment(comment.ID)
	require.NotNil(t, stored)
	require.Len(t, stored.Replies, 1)
	assert.Equal(t, "同感", stored.Replies[0].Content)
	assert.Empty(t, stored.Reactions)

	// 评论不存在与内容不存在是两种错误
	_, err = svc.AddReply(ctx, 11, "王强", &dto.ReplyCreateDTO{ContentID: contentID, CommentID: "no-such-comment", Content: "同感"})
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.AddReply(ctx, 11, "王强", &dto.ReplyCreateDTO{ContentID: "652f8aeb9d2f1b3c4d5e6f70", CommentID: comment.ID, Content: "同感"})
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestToggleCommentReaction(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewEngagementService(repo)
	ctx := context.Background()
	contentID := seedContent(t, repo, 1)

	comment, err := svc.AddComment(ctx, 10, "李娜", &dto.CommentCreateDTO{ContentID: contentID, Content: "写得真好"})
	require.NoError(t, err)
	req := &dto.ReactionDTO{ContentID: contentID, CommentID: comment.ID}

	active, err := svc.ToggleCommentReaction(ctx, 11, "王强", req)
	require.NoError(t, err)
	assert.True(t, active)

	item, _ := repo.GetByID(ctx, contentID)
	stored := item.FindComment(comment.ID)
	require.Len(t, stored.Reactions, 1)
	assert.Equal(t, uint64(11), stored.Reactions[0].UserID)
	assert.Equal(t, "王强", stored.Reactions[0].UserName)

	// 再来一次回到无反应状态
	active, err = svc.ToggleCommentReaction(ctx, 11, "王强", req)
	require.NoError(t, err)
	assert.False(t, active)

	item, _ = repo.GetByID(ctx, contentID)
	assert.Empty(t, item.FindComment(comment.ID).Reactions)

	_, err = svc.ToggleCommentReaction(ctx, 11, "王强", &dto.ReactionDTO{ContentID: contentID, CommentID: "no-such-comment"})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestGetCountsFallThroughToStore(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewEngagementService(repo)
	ctx := context.Background()
	contentID := seedContent(t, repo, 1)

	_, err := svc.ToggleLike(ctx, 42, contentID)
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, 10, "李娜", &dto.CommentCreateDTO{ContentID: contentID, Content: "写得真好"})
	require.NoError(t, err)

	likeCount, err := svc.GetLikeCount(ctx, contentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likeCount)

	commentCount, err := svc.GetCommentCount(ctx, contentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), commentCount)

	_, err = svc.GetLikeCount(ctx, "652f8aeb9d2f1b3c4d5e6f70")
	assert.ErrorIs(t, err, ErrContentNotFound)
}
