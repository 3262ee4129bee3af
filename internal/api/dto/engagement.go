package dto

import "time"

// CommentCreateDTO 发表评论请求
type CommentCreateDTO struct {
	ContentID string `json:"contentId" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

// ReplyCreateDTO 回复评论请求
type ReplyCreateDTO struct {
	ContentID string `json:"contentId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

// ReactionDTO 评论反应开关请求
type ReactionDTO struct {
	ContentID string `json:"contentId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
}

type ReactionItemDTO struct {
	UserID   uint64 `json:"userId"`
	UserName string `json:"userName"`
	Type     string `json:"type"`
}

type ReplyDTO struct {
	ID         string    `json:"id"`
	CommentID  string    `json:"commentId"`
	AuthorID   uint64    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentDTO struct {
	ID         string            `json:"id"`
	ContentID  string            `json:"contentId"`
	AuthorID   uint64            `json:"authorId"`
	AuthorName string            `json:"authorName"`
	Content    string            `json:"content"`
	Reactions  []ReactionItemDTO `json:"reactions"`
	Replies    []ReplyDTO        `json:"replies"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// ToggleResultDTO 开关类操作的结果
type ToggleResultDTO struct {
	Active bool `json:"active"`
}
