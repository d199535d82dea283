package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	clientapp "github.com/ratekeeper/ratekeeper/internal/application/client"
	notificationapp "github.com/ratekeeper/ratekeeper/internal/application/notification"
	planapp "github.com/ratekeeper/ratekeeper/internal/application/plan"
	ratelimitapp "github.com/ratekeeper/ratekeeper/internal/application/ratelimit"
	ruleapp "github.com/ratekeeper/ratekeeper/internal/application/rule"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/cache"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/config"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/metrics"
	ratelimitinfra "github.com/ratekeeper/ratekeeper/internal/infrastructure/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/repository"
	"github.com/ratekeeper/ratekeeper/internal/interfaces/http/handlers"
	"github.com/ratekeeper/ratekeeper/internal/interfaces/http/middleware"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"

	_ "github.com/ratekeeper/ratekeeper/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	engine              *gin.Engine
	cfg                 *config.Config
	notificationHandler *handlers.NotificationHandler
	planHandler         *handlers.PlanHandler
	clientHandler       *handlers.ClientHandler
	ruleHandler         *handlers.RuleHandler
	healthHandler       *handlers.HealthHandler
	admission           *middleware.AdmissionMiddleware
	metrics             *metrics.AdmissionMetrics
	logger              logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	clientRepo := repository.NewClientRepository(db)
	planRepo := repository.NewSubscriptionPlanRepository(db)
	ruleRepo := repository.NewRateLimitRuleRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	planCache := cache.NewRedisSubscriptionPlanCache(rdb, log)
	counters := ratelimitinfra.NewRedisCounterStore(rdb, log)
	evaluator := ratelimitinfra.NewScriptEvaluator(rdb, log)

	admissionMetrics := metrics.NewAdmissionMetrics()

	resolver := ratelimitapp.NewSubscriptionResolver(planCache, clientRepo, planRepo, log)
	assembler := ratelimitapp.NewLimitAssembler(ruleRepo, log)
	admissionService := ratelimitapp.NewAdmissionService(resolver, assembler, evaluator, &cfg.RateLimit, admissionMetrics, log)

	notificationService := notificationapp.NewService(notificationRepo, admissionMetrics, log)
	planService := planapp.NewService(planRepo, clientRepo, planCache, counters, log)
	clientService := clientapp.NewService(clientRepo, planRepo, log)
	ruleService := ruleapp.NewService(ruleRepo, log)

	return &Router{
		engine:              engine,
		cfg:                 cfg,
		notificationHandler: handlers.NewNotificationHandler(notificationService, log),
		planHandler:         handlers.NewPlanHandler(planService, log),
		clientHandler:       handlers.NewClientHandler(clientService, log),
		ruleHandler:         handlers.NewRuleHandler(ruleService, log),
		healthHandler:       handlers.NewHealthHandler(db, rdb),
		admission:           middleware.NewAdmissionMiddleware(clientRepo, admissionService, log),
		metrics:             admissionMetrics,
		logger:              log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.GET("/health", r.healthHandler.HealthCheck)

	if r.cfg.Metrics.Enabled {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	api := r.engine.Group("/api")

	// Every notify route passes the admission gate; management routes do not.
	notify := api.Group("/notify")
	notify.Use(r.admission.Admit())
	{
		notify.POST("/sms", r.notificationHandler.SendSMS)
		notify.POST("/email", r.notificationHandler.SendEmail)
	}

	plans := api.Group("/plans")
	{
		plans.POST("", r.planHandler.CreatePlan)
		plans.GET("", r.planHandler.ListPlans)
		plans.GET("/:id", r.planHandler.GetPlan)
		plans.PUT("/:id", r.planHandler.UpdatePlan)
	}

	clients := api.Group("/clients")
	{
		clients.POST("", r.clientHandler.CreateClient)
		clients.GET("", r.clientHandler.ListClients)
		clients.GET("/:id", r.clientHandler.GetClient)
	}

	limits := api.Group("/limits")
	{
		limits.POST("", r.ruleHandler.CreateRule)
		limits.GET("", r.ruleHandler.ListRules)
		limits.GET("/:id", r.ruleHandler.GetRule)
		limits.PUT("/:id", r.ruleHandler.UpdateRule)
	}

	api.GET("/notifications", r.notificationHandler.ListNotifications)
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
