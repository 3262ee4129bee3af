package wire

import (
	"AlumniHub/internal/api"
	"AlumniHub/internal/api/config"
	"AlumniHub/internal/api/handler"
	"AlumniHub/internal/job"
	"AlumniHub/internal/pkg/cron"
	"AlumniHub/internal/pkg/kafka"
	appmongo "AlumniHub/internal/pkg/mongo"
	"AlumniHub/internal/pkg/webhook"
	"AlumniHub/internal/repository"
	"AlumniHub/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Dispatcher   kafka.Dispatcher
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	contentRepo := appmongo.NewContentRepo(mongoDB)
	goalRepo := appmongo.NewGoalRepo(mongoDB)
	notifyRepo := appmongo.NewNotificationRepo(mongoDB)
	auditRepo := repository.NewModerationAuditRepo(db)

	dispatcher, err := kafka.NewDispatcher(cfg)
	if err != nil {
		return nil, err
	}

	contentService := service.NewContentService(contentRepo)
	engagementService := service.NewEngagementService(contentRepo)
	moderationService := service.NewModerationService(contentRepo, auditRepo, dispatcher)
	goalService := service.NewGoalService(goalRepo)
	notificationService := service.NewNotificationService(notifyRepo)

	handlers := &api.HandlersGroup{
		ContentHandler:      handler.NewContentHandler(contentService),
		EngagementHandler:   handler.NewEngagementHandler(engagementService),
		ModerationHandler:   handler.NewModerationHandler(moderationService),
		GoalHandler:         handler.NewGoalHandler(goalService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		WsHandler:           handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	pusher := webhook.NewPusher(cfg)
	kafkaMgr, err := kafka.NewConsumerManager(cfg, notificationService, pusher)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewEngagementCacheJob(engagementService),
		job.NewNotificationCleanJob(notifyRepo),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Dispatcher:   dispatcher,
	}, nil
}
