package app

import (
	"code_plus_backend/docs"
	"code_plus_backend/internal/config"
	"code_plus_backend/internal/middleware"
	"code_plus_backend/internal/model"
	"code_plus_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// Catalog is browsable without an account.
		public.GET("/courses", c.catalog.ListCourses)
		public.GET("/courses/:id", c.catalog.GetCourse)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.GET("/users/me", c.user.GetProfile)
	rg.PUT("/users/me", c.user.UpdateProfile)

	rg.GET("/modules/:id/lessons", c.catalog.GetModuleLessons)
	rg.GET("/lessons/:id", c.catalog.GetLesson)

	rg.POST("/lessons/:id/start", c.learning.StartLesson)
	rg.POST("/lessons/:id/complete", c.learning.CompleteLesson)
	rg.GET("/courses/:id/progress", c.learning.GetCourseProgress)

	rg.GET("/lessons/:id/notes", c.learning.ListLessonNotes)
	rg.POST("/notes", c.learning.CreateNote)
	rg.PUT("/notes/:id", c.learning.UpdateNote)
	rg.DELETE("/notes/:id", c.learning.DeleteNote)

	rg.POST("/submissions", c.learning.SubmitExercise)
	rg.GET("/submissions", c.learning.ListMySubmissions)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.Admin),
	)
	{
		admin.GET("/students", c.user.ListStudents)
		admin.PUT("/students/:id/disabled", c.user.SetStudentDisabled)
		admin.PUT("/submissions/:id/review", c.learning.ReviewSubmission)

		admin.GET("/courses", c.authoring.ListCourses)
		admin.POST("/courses", c.authoring.CreateCourse)
		admin.PUT("/courses/:id", c.authoring.UpdateCourse)
		admin.DELETE("/courses/:id", c.authoring.DeleteCourse)
		admin.POST("/courses/:id/modules", c.authoring.CreateModule)
		admin.PUT("/modules/:id", c.authoring.UpdateModule)
		admin.DELETE("/modules/:id", c.authoring.DeleteModule)
		admin.POST("/modules/:id/lessons", c.authoring.CreateLesson)
		admin.PUT("/lessons/:id", c.authoring.UpdateLesson)
		admin.DELETE("/lessons/:id", c.authoring.DeleteLesson)
		admin.POST("/lessons/:id/contents", c.authoring.CreateContent)
		admin.PUT("/lessons/:id/contents/reorder", c.authoring.ReorderContents)
		admin.PUT("/contents/:id", c.authoring.UpdateContent)
		admin.DELETE("/contents/:id", c.authoring.DeleteContent)
		admin.POST("/uploads/video", c.authoring.UploadVideo)

		// Bulk content import: preview first, then execute the session.
		admin.POST("/courses/:id/import/preview", c.imports.Preview)
		admin.POST("/courses/:id/import/execute", c.imports.Execute)

		admin.GET("/leads", c.lead.ListLeads)
		admin.POST("/leads", c.lead.CreateLead)
		admin.PUT("/leads/:id", c.lead.UpdateLead)
		admin.DELETE("/leads/:id", c.lead.DeleteLead)
		admin.GET("/leads/funnel", c.lead.LeadFunnel)

		admin.GET("/payments", c.payment.ListPayments)
		admin.POST("/payments", c.payment.CreatePayment)
		admin.PUT("/payments/:reference/paid", c.payment.MarkPaid)
		admin.PUT("/payments/:reference/refund", c.payment.Refund)

		admin.GET("/reports/dashboard", c.report.Dashboard)
		admin.GET("/reports/courses/:id/progress", c.report.CourseProgress)
		admin.GET("/reports/courses/:id/progress.csv", c.report.ExportProgressCSV)
		admin.GET("/reports/revenue.csv", c.report.ExportRevenueCSV)
	}
}
