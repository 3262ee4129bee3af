package dto

// ModerateDTO 审核决定请求
type ModerateDTO struct {
	Decision string  `json:"decision" validate:"required,oneof=approve reject"`
	Reason   *string `json:"reason" validate:"omitempty,max=500"`
}

type ModerationAuditDTO struct {
	ID          uint64 `json:"id"`
	ContentID   string `json:"contentId"`
	ContentKind string `json:"contentKind"`
	ModeratorID uint64 `json:"moderatorId"`
	Decision    int8   `json:"decision"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"createdAt"`
}
