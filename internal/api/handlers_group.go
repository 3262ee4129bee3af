package api

import "AlumniHub/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ContentHandler      *handler.ContentHandler
	EngagementHandler   *handler.EngagementHandler
	ModerationHandler   *handler.ModerationHandler
	GoalHandler         *handler.GoalHandler
	NotificationHandler *handler.NotificationHandler
	WsHandler           *handler.WsHandler
}
