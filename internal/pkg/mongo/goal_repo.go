package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrGoalTxnConflict 目标激活事务因并发写失败
var ErrGoalTxnConflict = errors.New("goal activation transaction conflict")

type GoalRepo interface {
	GetByID(ctx context.Context, id string) (*DonationGoal, error)
	List(ctx context.Context) ([]*DonationGoal, error)
	Upsert(ctx context.Context, goalType string, year int, month *int, amount int64) (*DonationGoal, error)
	Activate(ctx context.Context, id string) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
}

type goalRepoImpl struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewGoalRepo(db *mongo.Database) GoalRepo {
	return &goalRepoImpl{
		db:  db,
		col: db.Collection("donation_goals"),
	}
}

func (s *goalRepoImpl) GetByID(ctx context.Context, id string) (*DonationGoal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var goal DonationGoal
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// List 列出全部目标 (类型、年、月排序，供管理端展示)
func (s *goalRepoImpl) List(ctx context.Context) ([]*DonationGoal, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "goal_type", Value: 1},
		{Key: "year", Value: -1},
		{Key: "month", Value: -1},
	})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*DonationGoal
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Upsert 按 (goal_type, year, month) 业务键更新金额，不存在则插入
// 新插入的目标一律先处于未激活状态，激活走 Activate 保证排他
func (s *goalRepoImpl) Upsert(ctx context.Context, goalType string, year int, month *int, amount int64) (*DonationGoal, error) {
	now := time.Now()

	filter := bson.M{"goal_type": goalType, "year": year}
	setOnInsert := bson.M{
		"goal_type":  goalType,
		"year":       year,
		"is_active":  false,
		"created_at": now,
	}
	if month != nil {
		filter["month"] = *month
		setOnInsert["month"] = *month
	} else {
		filter["month"] = bson.M{"$exists": false}
	}

	update := bson.M{
		"$set":         bson.M{"amount": amount, "updated_at": now},
		"$setOnInsert": setOnInsert,
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var goal DonationGoal
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&goal)
	if mongo.IsDuplicateKeyError(err) {
		// 并发插入同一业务键时唯一索引拦下后来者，改走更新分支
		err = s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&goal)
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// Activate 在一个多文档事务中先停用同类型的其他激活目标，再激活自身
// 两步要么一起提交要么一起回滚，排他约束在任何可观测时刻都成立
func (s *goalRepoImpl) Activate(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	var goal DonationGoal
	if err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&goal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return false, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		_, err := s.col.UpdateMany(sc,
			bson.M{"goal_type": goal.GoalType, "_id": bson.M{"$ne": oid}, "is_active": true},
			bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
		)
		if err != nil {
			return nil, err
		}

		res, err := s.col.UpdateOne(sc,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"is_active": true, "updated_at": now}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		if isTransientTxnError(err) {
			return false, ErrGoalTxnConflict
		}
		return false, err
	}
	return true, nil
}

// Deactivate 无条件停用，无需触碰同类目标
func (s *goalRepoImpl) Deactivate(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func isTransientTxnError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError") ||
			cmdErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
