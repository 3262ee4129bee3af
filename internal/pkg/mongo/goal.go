package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationGoal 募捐目标
// 全局约束: 每种 goal_type 同时最多只有一条 is_active = true
type DonationGoal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoalType  string             `bson:"goal_type" json:"goalType"` // monthly / yearly
	Year      int                `bson:"year" json:"year"`
	Month     *int               `bson:"month,omitempty" json:"month,omitempty"` // 仅月度目标存在
	Amount    int64              `bson:"amount" json:"amount"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
