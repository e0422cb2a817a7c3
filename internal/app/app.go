package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gridiron_backend/internal/config"
	"gridiron_backend/internal/controller"
	"gridiron_backend/internal/repository"
	"gridiron_backend/internal/service"
	"gridiron_backend/pkg/configwatcher"
	"gridiron_backend/pkg/database"
	"gridiron_backend/pkg/logger"
	"gridiron_backend/pkg/monitoring"
	"gridiron_backend/pkg/security"
	"gridiron_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	cancel          context.CancelFunc
}

type repositories struct {
	quiz        *repository.QuizRepository
	attempt     *repository.QuizAttemptRepository
	progress    *repository.IQProgressRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	quiz       *service.QuizService
	footballIQ *service.FootballIQService
}

type controllers struct {
	quiz       *controller.QuizController
	footballIQ *controller.FootballIQController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		quiz:     repository.NewQuizRepository(db),
		attempt:  repository.NewQuizAttemptRepository(db),
		progress: repository.NewIQProgressRepository(db),
	}
	if rdb != nil {
		repos.leaderboard = repository.NewLeaderboardRepository(rdb)
	}
	return repos
}

func (a *App) initServices(repos *repositories, db *gorm.DB) *services {
	// 接口变量不能持有 nil 指针，否则服务内的 nil 判断失效
	var leaderboard service.Leaderboard
	if repos.leaderboard != nil {
		leaderboard = repos.leaderboard
	}

	return &services{
		quiz:       service.NewQuizService(repos.quiz, repos.attempt, db),
		footballIQ: service.NewFootballIQService(repos.quiz, repos.attempt, repos.progress, leaderboard, db),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		quiz:       controller.NewQuizController(s.quiz),
		footballIQ: controller.NewFootballIQController(s.footballIQ, a.Config.FootballIQ.LeaderboardSize),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 定时把超时未提交的作答标记为 abandoned
func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	interval := a.Config.FootballIQ.SweepInterval()
	ttl := a.Config.FootballIQ.AttemptTTL()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.footballIQ.SweepAbandoned(ctx, ttl); err != nil {
					logger.Log.Error("abandoned attempt sweep error", zap.Error(err))
				}
			}
		}
	}()
}

func (a *App) watchConfig(ctx context.Context) {
	if a.Config.Path == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.Path, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("config watcher stopped", zap.Error(err))
		}
	}()
}

// build 组装依赖并注册路由，不启动后台任务
func (a *App) build(db *gorm.DB, rdb *redis.Client) {
	cfg := a.Config
	a.DB = db
	a.Redis = rdb

	repos := a.initRepositories(db, rdb)
	a.services = a.initServices(repos, db)
	controllers := a.initControllers(a.services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	a.Router = router

	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, controllers, cfg)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{Config: cfg}
	if cfg.MigrateOnly {
		app.DB = db
		return app
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// 排行榜不可用不影响测验主流程
			logger.Log.Warn("Redis unavailable, leaderboard disabled", zap.Error(err))
			rdb = nil
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.build(db, rdb)

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	app.RegisterConfigCallback(logger.ApplyConfig)
	app.watchConfig(ctx)
	app.startBackgroundTasks(ctx, app.services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.cancel != nil {
		a.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
