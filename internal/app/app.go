package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venus_handbook_backend/internal/config"
	"venus_handbook_backend/internal/controller"
	"venus_handbook_backend/internal/repository"
	"venus_handbook_backend/internal/service"
	"venus_handbook_backend/pkg/database"
	"venus_handbook_backend/pkg/logger"
	"venus_handbook_backend/pkg/monitoring"
	"venus_handbook_backend/pkg/security"
	"venus_handbook_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	scheduler       *service.Scheduler
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	character *repository.CharacterRepository
	swimsuit  *repository.SwimsuitRepository
	gacha     *repository.GachaRepository
	guide     *repository.GuideRepository
	mission   *repository.MissionRepository
	quiz      *repository.QuizRepository
	favorite  *repository.FavoriteRepository
}

type services struct {
	auth      *service.AuthService
	character *service.CharacterService
	swimsuit  *service.SwimsuitService
	gacha     *service.GachaService
	guide     *service.GuideService
	mission   *service.MissionService
	quiz      *service.QuizService
	favorite  *service.FavoriteService
	importer  *service.ImportService
	sessions  *service.SessionManager
	storage   service.StorageProvider
}

type controllers struct {
	auth      *controller.AuthController
	character *controller.CharacterController
	swimsuit  *controller.SwimsuitController
	gacha     *controller.GachaController
	guide     *controller.GuideController
	mission   *controller.MissionController
	quiz      *controller.QuizController
	favorite  *controller.FavoriteController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ConfigCallbacks 配置热更新时要执行的回调
func (a *App) ConfigCallbacks() []func(*config.Config) {
	return a.configCallbacks
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		character: repository.NewCharacterRepository(db),
		swimsuit:  repository.NewSwimsuitRepository(db),
		gacha:     repository.NewGachaRepository(db),
		guide:     repository.NewGuideRepository(db),
		mission:   repository.NewMissionRepository(db),
		quiz:      repository.NewQuizRepository(db),
		favorite:  repository.NewFavoriteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.character = service.NewCharacterService(repos.character, rdb, cfg)
	s.swimsuit = service.NewSwimsuitService(repos.swimsuit, rdb, cfg)
	s.gacha = service.NewGachaService(repos.gacha, rdb, cfg)
	s.guide = service.NewGuideService(repos.guide, storage, rdb, cfg)
	s.mission = service.NewMissionService(repos.mission, rdb, cfg)
	s.favorite = service.NewFavoriteService(repos.favorite)
	s.importer = service.NewImportService(repos.swimsuit, repos.character, s.swimsuit, s.character)

	s.sessions = service.NewSessionManager(repos.quiz, time.Duration(cfg.Quiz.SessionTTLMinutes)*time.Minute)
	go s.sessions.Run()

	s.quiz = service.NewQuizService(repos.quiz, s.sessions, rdb, cfg)
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		character: controller.NewCharacterController(s.character, s.swimsuit, s.importer),
		swimsuit:  controller.NewSwimsuitController(s.swimsuit, s.favorite, s.importer),
		gacha:     controller.NewGachaController(s.gacha),
		guide:     controller.NewGuideController(s.guide),
		mission:   controller.NewMissionController(s.mission),
		quiz:      controller.NewQuizController(s.quiz),
		favorite:  controller.NewFavoriteController(s.favorite),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", a.Config)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.MigrateOnly {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Database migration failed", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
		if cfg.MigrateOnly {
			os.Exit(0)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存降级运行，目录筛选项改为每次回源
		logger.Log.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("venus-handbook", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.scheduler = service.NewScheduler(services.gacha, services.sessions)
	app.scheduler.Start()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	a.scheduler.Stop()
	a.services.sessions.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
}
