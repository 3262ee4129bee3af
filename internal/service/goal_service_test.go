package service

import (
	"context"
	"testing"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/mongo"
	"AlumniHub/internal/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertGoalValidation(t *testing.T) {
	svc := NewGoalService(newFakeGoalRepo())
	ctx := context.Background()

	// 月度目标必须带月份
	_, err := svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{GoalType: consts.GoalTypeMonthly, Year: 2026, Amount: 5000})
	assert.ErrorIs(t, err, ErrGoalMonthRequired)

	// 年度目标不允许带月份
	_, err = svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{GoalType: consts.GoalTypeYearly, Year: 2026, Month: util.PtrInt(3), Amount: 5000})
	assert.ErrorIs(t, err, ErrGoalMonthUnexpected)

	_, err = svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{GoalType: consts.GoalTypeMonthly, Year: 2026, Month: util.PtrInt(13), Amount: 5000})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{GoalType: consts.GoalTypeYearly, Year: 2026, Amount: 0})
	assert.ErrorIs(t, err, ErrGoalAmountInvalid)

	_, err = svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{GoalType: "weekly", Year: 2026, Amount: 5000})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUpsertGoalUpdatesAmount(t *testing.T) {
	repo := newFakeGoalRepo()
	svc := NewGoalService(repo)
	ctx := context.Background()

	first, err := svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{GoalType: consts.GoalTypeMonthly, Year: 2026, Month: util.PtrInt(9), Amount: 5000})
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	// 相同业务键再次提交只更新金额
	second, err := svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{GoalType: consts.GoalTypeMonthly, Year: 2026, Month: util.PtrInt(9), Amount: 8000})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(8000), second.Amount)

	goals, err := svc.GetGoalList(ctx)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

// 同类型目标的激活互斥：激活一个即停用其余，另一类型不受影响
func TestSetActiveExclusive(t *testing.T) {
	repo := newFakeGoalRepo()
	svc := NewGoalService(repo)
	ctx := context.Background()

	monthlyA := repo.addGoal(consts.GoalTypeMonthly, 2026, util.PtrInt(8), 5000, true)
	monthlyB := repo.addGoal(consts.GoalTypeMonthly, 2026, util.PtrInt(9), 6000, false)
	yearly := repo.addGoal(consts.GoalTypeYearly, 2026, nil, 100000, true)

	require.NoError(t, svc.SetActive(ctx, monthlyB.ID.Hex()))

	a, _ := repo.GetByID(ctx, monthlyA.ID.Hex())
	b, _ := repo.GetByID(ctx, monthlyB.ID.Hex())
	y, _ := repo.GetByID(ctx, yearly.ID.Hex())
	assert.False(t, a.IsActive)
	assert.True(t, b.IsActive)
	assert.True(t, y.IsActive)

	// 激活已激活的目标是无害的幂等操作
	require.NoError(t, svc.SetActive(ctx, monthlyB.ID.Hex()))
	b, _ = repo.GetByID(ctx, monthlyB.ID.Hex())
	assert.True(t, b.IsActive)
}

func TestSetActiveConflictExhausted(t *testing.T) {
	repo := newFakeGoalRepo()
	svc := NewGoalService(repo)
	goal := repo.addGoal(consts.GoalTypeMonthly, 2026, util.PtrInt(8), 5000, false)
	repo.activateErr = mongo.ErrGoalTxnConflict

	err := svc.SetActive(context.Background(), goal.ID.Hex())
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}

func TestSetActiveAndInactiveNotFound(t *testing.T) {
	svc := NewGoalService(newFakeGoalRepo())
	ctx := context.Background()

	err := svc.SetActive(ctx, "652f8aeb9d2f1b3c4d5e6f70")
	assert.ErrorIs(t, err, ErrGoalNotFound)

	err = svc.SetInactive(ctx, "652f8aeb9d2f1b3c4d5e6f70")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestUpsertGoalStartActive(t *testing.T) {
	repo := newFakeGoalRepo()
	svc := NewGoalService(repo)
	ctx := context.Background()

	existing := repo.addGoal(consts.GoalTypeMonthly, 2026, util.PtrInt(8), 5000, true)

	created, err := svc.UpsertGoal(ctx, &dto.GoalUpsertDTO{
		GoalType:    consts.GoalTypeMonthly,
		Year:        2026,
		Month:       util.PtrInt(9),
		Amount:      6000,
		StartActive: true,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	old, _ := repo.GetByID(ctx, existing.ID.Hex())
	assert.False(t, old.IsActive)
}
