package dto

import "time"

// ContentPayloadDTO 内容正文，类型专属字段按需携带
type ContentPayloadDTO struct {
	Title   string      `json:"title" validate:"required,max=255"`
	Body    string      `json:"body" validate:"required,max=10000"`
	Job     *JobDTO     `json:"job,omitempty"`
	Gallery *GalleryDTO `json:"gallery,omitempty"`
}

type JobDTO struct {
	Company  string     `json:"company" validate:"required,max=255"`
	Location string     `json:"location" validate:"max=255"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

type GalleryDTO struct {
	ImageURL string `json:"imageUrl" validate:"required,max=1024"`
	Caption  string `json:"caption" validate:"max=500"`
}

// ContentCreateDTO 投稿请求
type ContentCreateDTO struct {
	Kind string `json:"kind" validate:"required,oneof=post job gallery"`
	ContentPayloadDTO
}

// ResubmitDTO 作者重新编辑请求
type ResubmitDTO struct {
	ContentPayloadDTO
}

// ModerationStateDTO 审核状态
type ModerationStateDTO struct {
	Status          int8       `json:"status"`
	ModeratedBy     *uint64    `json:"moderatedBy,omitempty"`
	ModeratedAt     *time.Time `json:"moderatedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
}

// ContentDTO 内容详情
type ContentDTO struct {
	ID           string             `json:"id"`
	Kind         string             `json:"kind"`
	AuthorID     uint64             `json:"authorId"`
	AuthorName   string             `json:"authorName"`
	Payload      ContentPayloadDTO  `json:"payload"`
	Moderation   ModerationStateDTO `json:"moderation"`
	LikedBy      []uint64           `json:"likedBy"`
	Comments     []CommentDTO       `json:"comments"`
	LikeCount    int64              `json:"likeCount"`
	CommentCount int64              `json:"commentCount"`
	CreatedAt    string             `json:"createdAt"`
}
