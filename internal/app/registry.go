package app

import (
	"go-hris-workflow/internal/approval"
	"go-hris-workflow/internal/authorization"
	"go-hris-workflow/internal/config"
	"go-hris-workflow/internal/document"
	"go-hris-workflow/internal/messaging/kafka/producer"
	"go-hris-workflow/internal/middleware"
	"go-hris-workflow/internal/notification"
	"go-hris-workflow/internal/orghierarchy"
	"go-hris-workflow/internal/rbac"
	"go-hris-workflow/internal/request"
	"go-hris-workflow/internal/sideeffect"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type modules struct {
	dispatcher *sideeffect.Dispatcher
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	writer *kafkago.Writer,
	logger *zap.Logger,
) (*modules, error) {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	orgRepo := orghierarchy.NewRepository(gormDB)
	orgDirectory := orghierarchy.NewCachedDirectory(orgRepo, rdb, cfg.Redis.OrgTTL, logger)
	requestStore := request.NewStore(gormDB, cfg.Database.LockTimeout, cfg.Database.TransactionTimeout, logger)
	notificationRepo := notification.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Workflow ---
	orgResolver := orghierarchy.NewResolver(orgDirectory, logger)
	authzResolver := authorization.NewResolver(orgResolver, authorization.Config{
		FallbackDepartmentIDs: cfg.Workflow.FallbackDepartmentIDs(),
	}, logger)
	dispatcher := sideeffect.NewDispatcher(
		producer.NewNotificationPublisher(writer, cfg.Kafka.Topic, logger),
		document.NewRenderer(cfg.Document.Dir, logger),
		requestStore,
		authzResolver,
		cfg.SideEffect.Timeout,
		logger,
	)

	// --- Services ---
	requestService := request.NewService(requestStore, authzResolver, orgResolver, logger)
	approvalEngine := approval.NewEngine(requestStore, authzResolver, dispatcher, logger)
	notificationService := notification.NewService(notificationRepo, logger)

	// --- Handlers ---
	requestHandler := request.NewHandler(requestService, logger)
	approvalHandler := approval.NewHandler(approvalEngine, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	router.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.PerIPPerSecond), cfg.RateLimit.PerIPBurst),
	)
	auth := gin.HandlersChain{
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.ContextLogger(logger),
	}
	transitionLimit := middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.TransitionsPerSecond), cfg.RateLimit.TransitionBurst)

	api := router.Group("/api/v1")
	{
		request.RegisterRoutes(api, requestHandler, auth, rbacService, rdb)
		approval.RegisterRoutes(api, approvalHandler, auth, rbacService, transitionLimit)
		notification.RegisterRoutes(api, notificationHandler, auth, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, auth)
	}

	return &modules{dispatcher: dispatcher}, nil
}
