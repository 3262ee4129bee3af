package handler

import (
	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/response"
	"AlumniHub/internal/pkg/util"
	"AlumniHub/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type EngagementHandler struct {
	engagementSvc service.EngagementService
}

func NewEngagementHandler(engagementSvc service.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementSvc: engagementSvc,
	}
}

// ToggleLike 点赞/取消点赞，同一用户重复调用在两种状态间切换
func (s *EngagementHandler) ToggleLike(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	active, err := s.engagementSvc.ToggleLike(c.Request.Context(), userID, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToggleResultDTO{Active: active})
}

// GetEngagementState 获取内容的互动计数
func (s *EngagementHandler) GetEngagementState(c *gin.Context) {
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	ctx := c.Request.Context()
	state := make(map[string]int64, 2)
	g, gCtx := errgroup.WithContext(ctx)

	var likeCount, commentCount int64
	g.Go(func() error {
		likeCount, _ = s.engagementSvc.GetLikeCount(gCtx, contentID)
		return nil
	})
	g.Go(func() error {
		commentCount, _ = s.engagementSvc.GetCommentCount(gCtx, contentID)
		return nil
	})
	_ = g.Wait()

	state["likeCount"] = likeCount
	state["commentCount"] = commentCount
	response.Success(c, state)
}

// CreateComment 发表评论
func (s *EngagementHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	userName := c.GetString("user_name")

	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.engagementSvc.AddComment(c.Request.Context(), userID, userName, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// CreateReply 回复评论
func (s *EngagementHandler) CreateReply(c *gin.Context) {
	userID := c.GetUint64("user_id")
	userName := c.GetString("user_name")

	var req dto.ReplyCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	reply, err := s.engagementSvc.AddReply(c.Request.Context(), userID, userName, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reply)
}

// ToggleCommentReaction 对评论点赞/取消点赞
func (s *EngagementHandler) ToggleCommentReaction(c *gin.Context) {
	userID := c.GetUint64("user_id")
	userName := c.GetString("user_name")

	var req dto.ReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	active, err := s.engagementSvc.ToggleCommentReaction(c.Request.Context(), userID, userName, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToggleResultDTO{Active: active})
}
