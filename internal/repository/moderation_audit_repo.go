package repository

import (
	"context"

	"AlumniHub/internal/model"

	"gorm.io/gorm"
)

type ModerationAuditRepo interface {
	Create(ctx context.Context, audit *model.ModerationAudit) error
	GetByContentID(ctx context.Context, contentID string, limit, offset int) ([]*model.ModerationAudit, error)
	GetByModeratorID(ctx context.Context, moderatorID uint64, limit, offset int) ([]*model.ModerationAudit, error)
}

type ModerationAuditRepoImpl struct {
	db *gorm.DB
}

func NewModerationAuditRepo(db *gorm.DB) ModerationAuditRepo {
	return &ModerationAuditRepoImpl{db}
}

func (s *ModerationAuditRepoImpl) Create(ctx context.Context, audit *model.ModerationAudit) error {
	return s.db.WithContext(ctx).Create(audit).Error
}

// GetByContentID 按时间倒序列出某条内容的全部审核记录
func (s *ModerationAuditRepoImpl) GetByContentID(ctx context.Context, contentID string, limit, offset int) ([]*model.ModerationAudit, error) {
	var audits []*model.ModerationAudit
	err := s.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&audits).Error
	return audits, err
}

func (s *ModerationAuditRepoImpl) GetByModeratorID(ctx context.Context, moderatorID uint64, limit, offset int) ([]*model.ModerationAudit, error) {
	var audits []*model.ModerationAudit
	err := s.db.WithContext(ctx).
		Where("moderator_id = ?", moderatorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&audits).Error
	return audits, err
}
