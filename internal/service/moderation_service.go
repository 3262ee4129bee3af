package service

import (
	"context"
	log "log/slog"
	"strings"
	"time"

	"AlumniHub/internal/api/dto"
	"AlumniHub/internal/model"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/kafka"
	"AlumniHub/internal/pkg/mongo"
	"AlumniHub/internal/pkg/redis"
	"AlumniHub/internal/pkg/util"
	"AlumniHub/internal/repository"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ModerationService interface {
	Moderate(ctx context.Context, moderatorID uint64, contentID string, req *dto.ModerateDTO) error
	Resubmit(ctx context.Context, userID uint64, contentID string, req *dto.ResubmitDTO) (*dto.ContentDTO, error)
	GetQueue(ctx context.Context, kind string, page, pageSize int) ([]*dto.ContentDTO, error)
	GetAudits(ctx context.Context, contentID string, page, pageSize int) ([]*dto.ModerationAuditDTO, error)
	GetMyAudits(ctx context.Context, moderatorID uint64, page, pageSize int) ([]*dto.ModerationAuditDTO, error)
}

type moderationServiceImpl struct {
	contentRepo mongo.ContentRepo
	auditRepo   repository.ModerationAuditRepo
	dispatcher  kafka.Dispatcher
}

func NewModerationService(
	contentRepo mongo.ContentRepo,
	auditRepo repository.ModerationAuditRepo,
	dispatcher kafka.Dispatcher,
) ModerationService {
	return &moderationServiceImpl{
		contentRepo: contentRepo,
		auditRepo:   auditRepo,
		dispatcher:  dispatcher,
	}
}

// Moderate 执行审核决定
// 状态迁移是单次原子更新；通知投递与留痕失败只记日志，不影响本次调用结果
func (s *moderationServiceImpl) Moderate(ctx context.Context, moderatorID uint64, contentID string, req *dto.ModerateDTO) error {
	var status int8
	var decision int8
	switch req.Decision {
	case "approve":
		status, decision = consts.StatusApproved, consts.DecisionApprove
	case "reject":
		status, decision = consts.StatusRejected, consts.DecisionReject
	default:
		return ErrDecisionInvalid
	}

	item, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return ErrContentNotFound
		}
		return err
	}

	ok, err := s.contentRepo.SetModeration(ctx, contentID, status, moderatorID, req.Reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrContentNotFound
	}

	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	audit := &model.ModerationAudit{
		ContentID:   contentID,
		ContentKind: item.Kind,
		ModeratorID: moderatorID,
		Decision:    decision,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	if err = s.auditRepo.Create(ctx, audit); err != nil {
		log.ErrorContext(ctx, "write moderation audit error", "contentID", contentID, "err", err)
	}

	event := &kafka.ModerationEvent{
		EventID:     uuid.NewString(),
		ContentID:   contentID,
		Kind:        item.Kind,
		AuthorID:    item.AuthorID,
		ModeratorID: moderatorID,
		Decision:    decision,
		Reason:      reason,
		Preview:     util.TruncateRunes(item.Payload.Body, consts.ContentPreviewLen),
		OccurredAt:  time.Now(),
	}
	if err = s.dispatcher.Enqueue(ctx, event); err != nil {
		log.ErrorContext(ctx, "enqueue moderation event error", "contentID", contentID, "err", err)
	}

	publishContentChange(ctx, contentID, "moderation")
	return nil
}

// Resubmit 作者重新编辑正文后强制回到待审核
func (s *moderationServiceImpl) Resubmit(ctx context.Context, userID uint64, contentID string, req *dto.ResubmitDTO) (*dto.ContentDTO, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrContentEmpty
	}

	item, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		if mongo.IsNotFound(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if item.AuthorID != userID {
		return nil, UnauthorizedError
	}

	payload := toPayload(item.Kind, &req.ContentPayloadDTO)
	ok, err := s.contentRepo.ResetModeration(ctx, contentID, payload)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrContentNotFound
	}

	publishContentChange(ctx, contentID, "resubmit")

	updated, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	return convertToContentDTO(updated), nil
}

// GetQueue 待审核队列 (管理端)
func (s *moderationServiceImpl) GetQueue(ctx context.Context, kind string, page, pageSize int) ([]*dto.ContentDTO, error) {
	limit, offset := pageToRange(page, pageSize)
	list, err := s.contentRepo.ListByStatus(ctx, kind, consts.StatusPending, limit, offset)
	if err != nil {
		return nil, err
	}
	return convertToContentDTOs(list), nil
}

// GetAudits 某条内容的审核留痕
func (s *moderationServiceImpl) GetAudits(ctx context.Context, contentID string, page, pageSize int) ([]*dto.ModerationAuditDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	audits, err := s.auditRepo.GetByContentID(ctx, contentID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return convertToAuditDTOs(audits), nil
}

// GetMyAudits 审核员本人做过的决定记录
func (s *moderationServiceImpl) GetMyAudits(ctx context.Context, moderatorID uint64, page, pageSize int) ([]*dto.ModerationAuditDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	audits, err := s.auditRepo.GetByModeratorID(ctx, moderatorID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return convertToAuditDTOs(audits), nil
}

func convertToAuditDTOs(audits []*model.ModerationAudit) []*dto.ModerationAuditDTO {
	res := make([]*dto.ModerationAuditDTO, 0, len(audits))
	for _, audit := range audits {
		item := &dto.ModerationAuditDTO{}
		_ = copier.Copy(item, audit)
		item.CreatedAt = audit.CreatedAt.Format("2006-01-02 15:04:05")
		res = append(res, item)
	}
	return res
}

// publishContentChange 向资源频道广播变更，供订阅端失效缓存
func publishContentChange(ctx context.Context, contentID string, event string) {
	payload, _ := json.Marshal(map[string]string{
		"resource": "content",
		"id":       contentID,
		"event":    event,
	})
	if err := redis.Publish(ctx, consts.ContentChannelKey+contentID, payload); err != nil {
		log.WarnContext(ctx, "publish content change error", "contentID", contentID, "err", err)
	}
}
