package handler

import (
	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/response"
	"AlumniHub/internal/pkg/util"
	"AlumniHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationSvc service.ModerationService
}

func NewModerationHandler(moderationSvc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		moderationSvc: moderationSvc,
	}
}

// Moderate 审核员对内容下决定
func (s *ModerationHandler) Moderate(c *gin.Context) {
	moderatorID := c.GetUint64("user_id")
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.ModerateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.moderationSvc.Moderate(c.Request.Context(), moderatorID, contentID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Resubmit 作者修改后重新送审
func (s *ModerationHandler) Resubmit(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.ResubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := s.moderationSvc.Resubmit(c.Request.Context(), userID, contentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetQueue 待审核队列
func (s *ModerationHandler) GetQueue(c *gin.Context) {
	kind := c.Query("kind")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		pageSize = 20
	}

	list, err := s.moderationSvc.GetQueue(c.Request.Context(), kind, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetAudits 查看某条内容的审核留痕
func (s *ModerationHandler) GetAudits(c *gin.Context) {
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		pageSize = 20
	}

	audits, err := s.moderationSvc.GetAudits(c.Request.Context(), contentID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, audits)
}

// GetMyAudits 查看自己做过的审核决定
func (s *ModerationHandler) GetMyAudits(c *gin.Context) {
	moderatorID := c.GetUint64("user_id")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		pageSize = 20
	}

	audits, err := s.moderationSvc.GetMyAudits(c.Request.Context(), moderatorID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, audits)
}
