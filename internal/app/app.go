package app

import (
	"code_plus_backend/internal/config"
	"code_plus_backend/internal/controller"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/service"
	"code_plus_backend/pkg/database"
	"code_plus_backend/pkg/logger"
	"code_plus_backend/pkg/monitoring"
	"code_plus_backend/pkg/security"
	"code_plus_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	lesson     *repository.LessonRepository
	content    *repository.LessonContentRepository
	note       *repository.NoteRepository
	progress   *repository.ProgressRepository
	submission *repository.SubmissionRepository
	lead       *repository.LeadRepository
	payment    *repository.PaymentRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	catalog   *service.CatalogService
	learning  *service.LearningService
	authoring *service.AuthoringService
	storage   *service.StorageService
	imports   *service.ImportService
	lead      *service.LeadService
	payment   *service.PaymentService
	report    *service.ReportService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	catalog   *controller.CatalogController
	learning  *controller.LearningController
	authoring *controller.AuthoringController
	imports   *controller.ImportController
	lead      *controller.LeadController
	payment   *controller.PaymentController
	report    *controller.ReportController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		lesson:     repository.NewLessonRepository(db),
		content:    repository.NewLessonContentRepository(db),
		note:       repository.NewNoteRepository(db),
		progress:   repository.NewProgressRepository(db),
		submission: repository.NewSubmissionRepository(db),
		lead:       repository.NewLeadRepository(db),
		payment:    repository.NewPaymentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.catalog = service.NewCatalogService(repos.course, repos.module, repos.lesson, repos.content)
	s.learning = service.NewLearningService(repos.lesson, repos.content, repos.progress, repos.note, repos.submission)
	s.authoring = service.NewAuthoringService(repos.course, repos.module, repos.lesson, repos.content, s.storage, cfg)
	s.imports = service.NewImportService(repos.course, repos.module, repos.lesson, repos.content, db, rdb, cfg)
	s.lead = service.NewLeadService(repos.lead)
	s.payment = service.NewPaymentService(repos.payment, repos.user)
	s.report = service.NewReportService(repos.user, repos.course, repos.progress, repos.lead, repos.payment, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		catalog:   controller.NewCatalogController(s.catalog),
		learning:  controller.NewLearningController(s.learning),
		authoring: controller.NewAuthoringController(s.authoring),
		imports:   controller.NewImportController(s.imports),
		lead:      controller.NewLeadController(s.lead),
		payment:   controller.NewPaymentController(s.payment),
		report:    controller.NewReportController(s.report),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("code-plus", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ApplyConfig copies the runtime-tunable settings from a freshly loaded
// config into the live one shared by the services.
func (a *App) ApplyConfig(newCfg *config.Config) {
	a.Config.Import = newCfg.Import
	a.Config.RateLimit = newCfg.RateLimit
	a.Config.CORS = newCfg.CORS
	logger.Log.Info("Configuration reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
