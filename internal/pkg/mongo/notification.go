package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification 审核结果通知
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID uint64             `bson:"recipient_id" json:"recipientId"` // 消息接收者ID
	Type        int8               `bson:"type" json:"type"`                // 通知类型: 1-内容已通过, 2-内容已拒绝
	TargetID    string             `bson:"target_id" json:"targetId"`       // 关联的内容ID
	Content     string             `bson:"content" json:"content"`          // 内容预览片段
	Payload     map[string]any     `bson:"payload" json:"payload"`          // 额外元数据 (拒绝原因等)
	IsRead      bool               `bson:"is_read" json:"isRead"`           // 是否已读
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`     // 创建时间
}
