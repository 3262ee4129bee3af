package mongo

import (
	"time"

	"AlumniHub/internal/pkg/consts"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentItem 用户投稿内容（帖子/职位/相册），连同评论与点赞集合构成一个聚合文档
type ContentItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind       string             `bson:"kind" json:"kind"` // post / job / gallery
	AuthorID   uint64             `bson:"author_id" json:"authorId"`
	AuthorName string             `bson:"author_name" json:"authorName"`
	Payload    ContentPayload     `bson:"payload" json:"payload"`
	Moderation ModerationState    `bson:"moderation" json:"moderation"`
	LikedBy    []uint64           `bson:"liked_by" json:"likedBy"` // 点赞用户集合，元素唯一
	Comments   []Comment          `bson:"comments" json:"comments"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ContentPayload 各内容类型共享正文，类型专属字段按需挂载
type ContentPayload struct {
	Title   string          `bson:"title" json:"title"`
	Body    string          `bson:"body" json:"body"`
	Job     *JobDetails     `bson:"job,omitempty" json:"job,omitempty"`
	Gallery *GalleryDetails `bson:"gallery,omitempty" json:"gallery,omitempty"`
}

// JobDetails 职位信息
type JobDetails struct {
	Company  string     `bson:"company" json:"company"`
	Location string     `bson:"location" json:"location"`
	Deadline *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
}

// GalleryDetails 相册条目信息
type GalleryDetails struct {
	ImageURL string `bson:"image_url" json:"imageUrl"`
	Caption  string `bson:"caption" json:"caption"`
}

// ModerationState 审核状态
// 约束: status 为待审核时 moderated_by / moderated_at 必须为空
type ModerationState struct {
	Status          int8       `bson:"status" json:"status"` // 0-待审核, 1-已通过, 2-已拒绝
	ModeratedBy     *uint64    `bson:"moderated_by,omitempty" json:"moderatedBy,omitempty"`
	ModeratedAt     *time.Time `bson:"moderated_at,omitempty" json:"moderatedAt,omitempty"`
	RejectionReason *string    `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
}

// Comment 一级评论，回复与反应内嵌其下
type Comment struct {
	ID         string     `bson:"id" json:"id"`
	ContentID  string     `bson:"content_id" json:"contentId"`
	AuthorID   uint64     `bson:"author_id" json:"authorId"`
	AuthorName string     `bson:"author_name" json:"authorName"`
	Content    string     `bson:"content" json:"content"`
	Reactions  []Reaction `bson:"reactions" json:"reactions"`
	Replies    []Reply    `bson:"replies" json:"replies"`
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
}

// Reply 评论回复，只属于一条评论
type Reply struct {
	ID         string    `bson:"id" json:"id"`
	CommentID  string    `bson:"comment_id" json:"commentId"`
	AuthorID   uint64    `bson:"author_id" json:"authorId"`
	AuthorName string    `bson:"author_name" json:"authorName"`
	Content    string    `bson:"content" json:"content"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Reaction 评论反应，展示时无需二次查询昵称
type Reaction struct {
	UserID   uint64 `bson:"user_id" json:"userId"`
	UserName string `bson:"user_name" json:"userName"`
	Type     string `bson:"type" json:"type"`
}

// FindComment 在聚合内按 ID 查找评论
func (s *ContentItem) FindComment(commentID string) *Comment {
	for i := range s.Comments {
		if s.Comments[i].ID == commentID {
			return &s.Comments[i]
		}
	}
	return nil
}

// IsApproved 内容是否已通过审核
func (s *ContentItem) IsApproved() bool {
	return s.Moderation.Status == consts.StatusApproved
}
