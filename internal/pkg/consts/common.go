package consts

// 内容类型
const (
	KindPost    = "post"
	KindJob     = "job"
	KindGallery = "gallery"
)

// 审核状态
const (
	StatusPending  int8 = 0
	StatusApproved int8 = 1
	StatusRejected int8 = 2
)

// 审核决定
const (
	DecisionApprove int8 = 1
	DecisionReject  int8 = 2
)

// 通知类型
const (
	NotifyTypeContentApproved int8 = 1
	NotifyTypeContentRejected int8 = 2
)

// 募捐目标周期
const (
	GoalTypeMonthly = "monthly"
	GoalTypeYearly  = "yearly"
)

// 评论反应类型
const (
	ReactionTypeLike = "like"
)

const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// 内容预览截断长度（按 rune 计）
const ContentPreviewLen = 50
