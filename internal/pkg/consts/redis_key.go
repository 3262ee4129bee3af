package consts

const (
	ContentLikeKey    = "content:like:"
	ContentCommentKey = "content:comment:"
	ContentDirtyKey   = "content:engagement:dirty"
	ContentChannelKey = "content:channel:"
	UserNotifyChannel = "user:notify:"
	IdempotencyKey    = "idempotency:"
)

const (
	GoalActivateLock = "goal:activate:lock:"
)
