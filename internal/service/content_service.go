package service

import (
	"context"
	"strings"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/mongo"

	"github.com/jinzhu/copier"
)

const defaultPageSize = 20

type ContentService interface {
	CreateContent(ctx context.Context, userID uint64, userName string, req *dto.ContentCreateDTO) (*dto.ContentDTO, error)
	GetContent(ctx context.Context, viewerID uint64, contentID string) (*dto.ContentDTO, error)
	GetContentList(ctx context.Context, kind string, page, pageSize int) ([]*dto.ContentDTO, error)
	GetContentByAuthor(ctx context.Context, authorID uint64, page, pageSize int) ([]*dto.ContentDTO, error)
	DeleteContent(ctx context.Context, userID uint64, isAdmin bool, contentID string) error
}

type contentServiceImpl struct {
	contentRepo mongo.ContentRepo
}

func NewContentService(contentRepo mongo.ContentRepo) ContentService {
	return &contentServiceImpl{
		contentRepo: contentRepo,
	}
}

// CreateContent 提交新内容，一律进入待审核状态
func (s *contentServiceImpl) CreateContent(ctx context.Context, userID uint64, userName string, req *dto.ContentCreateDTO) (*dto.ContentDTO, error) {
	if req.Kind != consts.KindPost && req.Kind != consts.KindJob && req.Kind != consts.KindGallery {
		return nil, ErrKindInvalid
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrContentEmpty
	}

	item := &mongo.ContentItem{
		Kind:       req.Kind,
		AuthorID:   userID,
		AuthorName: userName,
		Payload:    toPayload(req.Kind, &req.ContentPayloadDTO),
	}

	if _, err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return convertToContentDTO(item), nil
}

// GetContent 获取详情
// 未过审的内容只有作者本人可见，对外不暴露其存在
func (s *contentServiceImpl) GetContent(ctx context.Context, viewerID uint64, contentID string) (*dto.ContentDTO, error) {
	item, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if item.Moderation.Status != consts.StatusApproved && item.AuthorID != viewerID {
		return nil, ErrContentNotFound
	}
	return convertToContentDTO(item), nil
}

// GetContentList 面向门户的已通过内容列表
func (s *contentServiceImpl) GetContentList(ctx context.Context, kind string, page, pageSize int) ([]*dto.ContentDTO, error) {
	limit, offset := pageToRange(page, pageSize)
	list, err := s.contentRepo.ListByStatus(ctx, kind, consts.StatusApproved, limit, offset)
	if err != nil {
		return nil, err
	}
	return convertToContentDTOs(list), nil
}

func (s *contentServiceImpl) GetContentByAuthor(ctx context.Context, authorID uint64, page, pageSize int) ([]*dto.ContentDTO, error) {
	limit, offset := pageToRange(page, pageSize)
	list, err := s.contentRepo.ListByAuthor(ctx, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return convertToContentDTOs(list), nil
}

// DeleteContent 删除内容，仅作者本人或管理员可操作
func (s *contentServiceImpl) DeleteContent(ctx context.Context, userID uint64, isAdmin bool, contentID string) error {
	item, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return ErrContentNotFound
		}
		return err
	}
	if item.AuthorID != userID && !isAdmin {
		return UnauthorizedError
	}

	ok, err := s.contentRepo.Delete(ctx, contentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrContentNotFound
	}
	return nil
}

func toPayload(kind string, req *dto.ContentPayloadDTO) mongo.ContentPayload {
	payload := mongo.ContentPayload{
		Title: req.Title,
		Body:  req.Body,
	}
	switch kind {
	case consts.KindJob:
		if req.Job != nil {
			payload.Job = &mongo.JobDetails{
				Company:  req.Job.Company,
				Location: req.Job.Location,
				Deadline: req.Job.Deadline,
			}
		}
	case consts.KindGallery:
		if req.Gallery != nil {
			payload.Gallery = &mongo.GalleryDetails{
				ImageURL: req.Gallery.ImageURL,
				Caption:  req.Gallery.Caption,
			}
		}
	}
	return payload
}

func convertToContentDTO(item *mongo.ContentItem) *dto.ContentDTO {
	dtoItem := &dto.ContentDTO{}
	_ = copier.Copy(dtoItem, item)

	dtoItem.ID = item.ID.Hex()
	dtoItem.LikeCount = int64(len(item.LikedBy))
	dtoItem.CommentCount = int64(len(item.Comments))
	dtoItem.CreatedAt = item.CreatedAt.Format("2006-01-02 15:04:05")
	return dtoItem
}

func convertToContentDTOs(list []*mongo.ContentItem) []*dto.ContentDTO {
	res := make([]*dto.ContentDTO, 0, len(list))
	for _, item := range list {
		res = append(res, convertToContentDTO(item))
	}
	return res
}

func pageToRange(page, pageSize int) (limit, offset int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}
	return int64(pageSize), int64((page - 1) * pageSize)
}
