package model

import (
	"time"
)

// ModerationAudit 审核操作留痕，供管理端追溯
type ModerationAudit struct {
	ID          uint64    `gorm:"primaryKey"`
	ContentID   string    `gorm:"type:varchar(24);not null;index:idx_content_id" json:"contentId"`
	ContentKind string    `gorm:"type:varchar(16);not null" json:"contentKind"`
	ModeratorID uint64    `gorm:"not null;index:idx_moderator_id" json:"moderatorId"`
	Decision    int8      `gorm:"not null" json:"decision"` // 1:通过, 2:拒绝
	Reason      string    `gorm:"type:varchar(500)" json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (ModerationAudit) TableName() string {
	return "moderation_audits"
}
