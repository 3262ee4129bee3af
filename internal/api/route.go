package api

import (
	"AlumniHub/internal/api/middleware"
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 实时推送
		apiGroup.GET("/ws/connect", group.WsHandler.Connect)

		contentGroup := apiGroup.Group("/contents")
		{
			// 无需登录即可浏览已过审内容
			contentGroup.GET("", group.ContentHandler.GetContentList)
			contentGroup.GET("/detail/:content_id", middleware.AuthOptionalMiddleware(), group.ContentHandler.GetContent)
			contentGroup.GET("/state/:content_id", group.EngagementHandler.GetEngagementState)

			authGroup := contentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", middleware.IdempotencyMiddleware(), group.ContentHandler.CreateContent)
				authGroup.GET("/mine", group.ContentHandler.GetMyContent)
				authGroup.DELETE("/:content_id", group.ContentHandler.DeleteContent)
				authGroup.PUT("/:content_id/resubmit", group.ModerationHandler.Resubmit)

				authGroup.POST("/likes/:content_id", group.EngagementHandler.ToggleLike)
				authGroup.POST("/comments", middleware.IdempotencyMiddleware(), group.EngagementHandler.CreateComment)
				authGroup.POST("/replies", middleware.IdempotencyMiddleware(), group.EngagementHandler.CreateReply)
				authGroup.POST("/reactions", group.EngagementHandler.ToggleCommentReaction)
			}
		}

		moderationGroup := apiGroup.Group("/moderation")
		{
			moderationGroup.Use(middleware.AuthMiddleware())
			moderationGroup.Use(middleware.CheckRoles(consts.RoleAdmin, consts.RoleModerator))
			{
				moderationGroup.GET("/queue", group.ModerationHandler.GetQueue)
				moderationGroup.POST("/:content_id/decision", group.ModerationHandler.Moderate)
				moderationGroup.GET("/audits/:content_id", group.ModerationHandler.GetAudits)
				moderationGroup.GET("/self/audits", group.ModerationHandler.GetMyAudits)
			}
		}

		goalGroup := apiGroup.Group("/goals")
		{
			goalGroup.GET("", group.GoalHandler.GetGoalList)
			goalGroup.GET("/:goal_id", group.GoalHandler.GetGoal)

			adminGroup := goalGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware())
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("", group.GoalHandler.UpsertGoal)
				adminGroup.PUT("/:goal_id/activate", group.GoalHandler.ActivateGoal)
				adminGroup.PUT("/:goal_id/deactivate", group.GoalHandler.DeactivateGoal)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		{
			notifyGroup.Use(middleware.AuthMiddleware())
			{
				notifyGroup.GET("", group.NotificationHandler.GetNotifications)
				notifyGroup.GET("/unread/count", group.NotificationHandler.GetUnreadCount)
				notifyGroup.PUT("/read/:notify_id", group.NotificationHandler.MarkRead)
				notifyGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
			}
		}
	}

	return r
}
