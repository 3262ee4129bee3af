package handler

import (
	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/response"
	"AlumniHub/internal/pkg/util"
	"AlumniHub/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentSvc service.ContentService
}

func NewContentHandler(contentSvc service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// CreateContent 发布内容，初始状态为待审核
func (s *ContentHandler) CreateContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	userName := c.GetString("user_name")

	var req dto.ContentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := s.contentSvc.CreateContent(c.Request.Context(), userID, userName, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetContent 获取内容详情，带上身份时作者可以看到自己未过审的内容
func (s *ContentHandler) GetContent(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item, err := s.contentSvc.GetContent(c.Request.Context(), viewerID, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// GetContentList 按类型分页获取已过审内容
func (s *ContentHandler) GetContentList(c *gin.Context) {
	kind := c.DefaultQuery("kind", consts.KindPost)
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		pageSize = 20
	}

	list, err := s.contentSvc.GetContentList(c.Request.Context(), kind, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetMyContent 获取我发布的内容 (含未过审)
func (s *ContentHandler) GetMyContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		pageSize = 20
	}

	list, err := s.contentSvc.GetContentByAuthor(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// DeleteContent 删除内容，作者本人或管理员可操作
func (s *ContentHandler) DeleteContent(c *gin.Context) {
	userID := c.GetUint64("user_id")
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	roles := c.GetStringSlice("roles")
	isAdmin := false
	for _, role := range roles {
		if role == consts.RoleAdmin {
			isAdmin = true
			break
		}
	}

	if err := s.contentSvc.DeleteContent(c.Request.Context(), userID, isAdmin, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
