package service

import (
	"context"
	"testing"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModerationFixture() (*fakeContentRepo, *fakeAuditRepo, *fakeDispatcher, ModerationService) {
	contentRepo := newFakeContentRepo()
	auditRepo := &fakeAuditRepo{}
	dispatcher := &fakeDispatcher{}
	svc := NewModerationService(contentRepo, auditRepo, dispatcher)
	return contentRepo, auditRepo, dispatcher, svc
}

func TestModerateApprove(t *testing.T) {
	contentRepo, auditRepo, dispatcher, svc := newModerationFixture()
	ctx := context.Background()
	contentID := seedContent(t, contentRepo, 7)

	err := svc.Moderate(ctx, 100, contentID, &dto.ModerateDTO{Decision: "approve"})
	require.NoError(t, err)

	item, _ := contentRepo.GetByID(ctx, contentID)
	assert.Equal(t, consts.StatusApproved, item.Moderation.Status)
	require.NotNil(t, item.Moderation.ModeratedBy)
	assert.Equal(t, uint64(100), *item.Moderation.ModeratedBy)
	assert.NotNil(t, item.Moderation.ModeratedAt)
	assert.Nil(t, item.Moderation.RejectionReason)

	// 留痕 + 事件各一条
	require.Len(t, auditRepo.audits, 1)
	assert.Equal(t, consts.DecisionApprove, auditRepo.audits[0].Decision)

	require.Len(t, dispatcher.events, 1)
	event := dispatcher.events[0]
	assert.Equal(t, contentID, event.ContentID)
	assert.Equal(t, uint64(7), event.AuthorID)
	assert.NotEmpty(t, event.EventID)
}

func TestModerateReject(t *testing.T) {
	contentRepo, auditRepo, dispatcher, svc := newModerationFixture()
	ctx := context.Background()
	contentID := seedContent(t, contentRepo, 7)

	err := svc.Moderate(ctx, 100, contentID, &dto.ModerateDTO{Decision: "reject", Reason: util.PtrStr("内容与校友活动无关")})
	require.NoError(t, err)

	item, _ := contentRepo.GetByID(ctx, contentID)
	assert.Equal(t, consts.StatusRejected, item.Moderation.Status)
	require.NotNil(t, item.Moderation.RejectionReason)
	assert.Equal(t, "内容与校友活动无关", *item.Moderation.RejectionReason)

	require.Len(t, auditRepo.audits, 1)
	assert.Equal(t, "内容与校友活动无关", auditRepo.audits[0].Reason)
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, consts.DecisionReject, dispatcher.events[0].Decision)
}

// 先拒绝再通过，遗留的拒绝原因必须被清除
func TestApproveClearsStaleReason(t *testing.T) {
	contentRepo, _, _, svc := newModerationFixture()
	ctx := context.Background()
	contentID := seedContent(t, contentRepo, 7)

	require.NoError(t, svc.Moderate(ctx, 100, contentID, &dto.ModerateDTO{Decision: "reject", Reason: util.PtrStr("图片模糊")}))
	require.NoError(t, svc.Moderate(ctx, 101, contentID, &dto.ModerateDTO{Decision: "approve"}))

	item, _ := contentRepo.GetByID(ctx, contentID)
	assert.Equal(t, consts.StatusApproved, item.Moderation.Status)
	assert.Nil(t, item.Moderation.RejectionReason)
	assert.Equal(t, uint64(101), *item.Moderation.ModeratedBy)
}

func TestModerateErrors(t *testing.T) {
	contentRepo, _, _, svc := newModerationFixture()
	ctx := context.Background()
	contentID := seedContent(t, contentRepo, 7)

	err := svc.Moderate(ctx, 100, contentID, &dto.ModerateDTO{Decision: "maybe"})
	assert.ErrorIs(t, err, ErrDecisionInvalid)

	err = svc.Moderate(ctx, 100, "652f8aeb9d2f1b3c4d5e6f70", &dto.ModerateDTO{Decision: "approve"})
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestResubmit(t *testing.T) {
	contentRepo, _, _, svc := newModerationFixture()
	ctx := context.Background()
	contentID := seedContent(t, contentRepo, 7)

	require.NoError(t, svc.Moderate(ctx, 100, contentID, &dto.ModerateDTO{Decision: "reject", Reason: util.PtrStr("标题不当")}))

	req := &dto.ResubmitDTO{}
	req.Title = "校友返校日 (修订)"
	req.Body = "修订后的活动说明"

	// 非作者不允许重新送审
	_, err := svc.Resubmit(ctx, 8, contentID, req)
	assert.ErrorIs(t, err, UnauthorizedError)

	updated, err := svc.Resubmit(ctx, 7, contentID, req)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusPending, updated.Moderation.Status)
	assert.Equal(t, "校友返校日 (修订)", updated.Payload.Title)

	// 审核痕迹全部清空
	item, _ := contentRepo.GetByID(ctx, contentID)
	assert.Nil(t, item.Moderation.ModeratedBy)
	assert.Nil(t, item.Moderation.ModeratedAt)
	assert.Nil(t, item.Moderation.RejectionReason)

	emptyReq := &dto.ResubmitDTO{}
	emptyReq.Body = "   "
	_, err = svc.Resubmit(ctx, 7, contentID, emptyReq)
	assert.ErrorIs(t, err, ErrContentEmpty)
}

func TestGetQueue(t *testing.T) {
	contentRepo, auditRepo, _, svc := newModerationFixture()
	ctx := context.Background()

	first := seedContent(t, contentRepo, 7)
	second := seedContent(t, contentRepo, 8)
	require.NoError(t, svc.Moderate(ctx, 100, second, &dto.ModerateDTO{Decision: "approve"}))

	queue, err := svc.GetQueue(ctx, "", 1, 20)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, first, queue[0].ID)

	audits, err := svc.GetAudits(ctx, second, 1, 20)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, auditRepo.audits[0].ContentID, audits[0].ContentID)
	assert.Equal(t, uint64(100), audits[0].ModeratorID)
}

func TestGetMyAudits(t *testing.T) {
	contentRepo, _, _, svc := newModerationFixture()
	ctx := context.Background()

	first := seedContent(t, contentRepo, 7)
	second := seedContent(t, contentRepo, 8)
	reason := "与校友活动无关"
	require.NoError(t, svc.Moderate(ctx, 100, first, &dto.ModerateDTO{Decision: "approve"}))
	require.NoError(t, svc.Moderate(ctx, 101, second, &dto.ModerateDTO{Decision: "reject", Reason: &reason}))

	// 只返回自己做过的决定
	mine, err := svc.GetMyAudits(ctx, 100, 1, 20)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first, mine[0].ContentID)
	assert.Equal(t, consts.DecisionApprove, mine[0].Decision)

	others, err := svc.GetMyAudits(ctx, 101, 1, 20)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "与校友活动无关", others[0].Reason)

	none, err := svc.GetMyAudits(ctx, 102, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, none)
}
