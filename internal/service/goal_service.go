package service

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/mongo"
	"AlumniHub/internal/pkg/redis"

	"github.com/google/uuid"
)

// 激活事务冲突时从新读重试的次数上限
const goalActivateRetries = 2

type GoalService interface {
	UpsertGoal(ctx context.Context, req *dto.GoalUpsertDTO) (*dto.GoalDTO, error)
	SetActive(ctx context.Context, goalID string) error
	SetInactive(ctx context.Context, goalID string) error
	GetGoal(ctx context.Context, goalID string) (*dto.GoalDTO, error)
	GetGoalList(ctx context.Context) ([]*dto.GoalDTO, error)
}

type goalServiceImpl struct {
	goalRepo mongo.GoalRepo
}

func NewGoalService(goalRepo mongo.GoalRepo) GoalService {
	return &goalServiceImpl{
		goalRepo: goalRepo,
	}
}

// UpsertGoal 按 (类型, 年, 月) 业务键更新金额或插入新目标
// 要求立即激活时再委托 SetActive，排他约束不会出现瞬时违反
func (s *goalServiceImpl) UpsertGoal(ctx context.Context, req *dto.GoalUpsertDTO) (*dto.GoalDTO, error) {
	switch req.GoalType {
	case consts.GoalTypeMonthly:
		if req.Month == nil {
			return nil, ErrGoalMonthRequired
		}
		if *req.Month < 1 || *req.Month > 12 {
			return nil, ErrParamInvalid
		}
	case consts.GoalTypeYearly:
		if req.Month != nil {
			return nil, ErrGoalMonthUnexpected
		}
	default:
		return nil, ErrParamInvalid
	}
	if req.Amount <= 0 {
		return nil, ErrGoalAmountInvalid
	}

	goal, err := s.goalRepo.Upsert(ctx, req.GoalType, req.Year, req.Month, req.Amount)
	if err != nil {
		return nil, err
	}

	if req.StartActive && !goal.IsActive {
		if err = s.SetActive(ctx, goal.ID.Hex()); err != nil {
			return nil, err
		}
		goal.IsActive = true
	}
	return convertToGoalDTO(goal), nil
}

// SetActive 激活目标，同类型其他激活目标在同一事务内被停用
// 事务冲突自动从新读重试，重试耗尽后以并发冲突上报调用方
func (s *goalServiceImpl) SetActive(ctx context.Context, goalID string) error {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return ErrGoalNotFound
		}
		return err
	}

	// 同类型激活先抢分布式锁串行化，降低事务冲突概率；抢锁失败仍走事务兜底
	lockKey := consts.GoalActivateLock + goal.GoalType
	lockVal := uuid.NewString()
	locked, lockErr := redis.TryLock(ctx, lockKey, lockVal, 5*time.Second, 3)
	if lockErr == nil && locked {
		defer redis.UnLock(ctx, lockKey, lockVal)
	}

	for attempt := 0; attempt <= goalActivateRetries; attempt++ {
		var ok bool
		ok, err = s.goalRepo.Activate(ctx, goalID)
		if err == nil {
			if !ok {
				return ErrGoalNotFound
			}
			return nil
		}
		if !errors.Is(err, mongo.ErrGoalTxnConflict) {
			return err
		}
		log.WarnContext(ctx, "goal activation conflict, retrying", "goalID", goalID, "attempt", attempt+1)
	}
	return ErrConcurrencyConflict
}

// SetInactive 无条件停用
func (s *goalServiceImpl) SetInactive(ctx context.Context, goalID string) error {
	ok, err := s.goalRepo.Deactivate(ctx, goalID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGoalNotFound
	}
	return nil
}

func (s *goalServiceImpl) GetGoal(ctx context.Context, goalID string) (*dto.GoalDTO, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return convertToGoalDTO(goal), nil
}

func (s *goalServiceImpl) GetGoalList(ctx context.Context) ([]*dto.GoalDTO, error) {
	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.GoalDTO, 0, len(goals))
	for _, goal := range goals {
		res = append(res, convertToGoalDTO(goal))
	}
	return res, nil
}

func convertToGoalDTO(goal *mongo.DonationGoal) *dto.GoalDTO {
	return &dto.GoalDTO{
		ID:       goal.ID.Hex(),
		GoalType: goal.GoalType,
		Year:     goal.Year,
		Month:    goal.Month,
		Amount:   goal.Amount,
		IsActive: goal.IsActive,
	}
}
