package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "zitheke_dev_v1/docs"
	"zitheke_dev_v1/internal/controller"
	"zitheke_dev_v1/internal/middleware"
	"zitheke_dev_v1/pkg/logger"
)

// Controllers bundles every HTTP handler the router mounts.
type Controllers struct {
	Catalog    *controller.CatalogController
	Wizard     *controller.WizardController
	Report     *controller.ReportController
	Submission *controller.SubmissionController
}

// Options configures the router.
type Options struct {
	Log            *zap.Logger
	PreviewDir     string // served under /previews when set
	PostCooldown   time.Duration
	ReportCooldown time.Duration
	MaxUploadBytes int64
}

// SetupRouter builds the engine with middleware and every route.
func SetupRouter(ctls *Controllers, opts Options) *gin.Engine {
	log := logger.OrNop(opts.Log)

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	InitRoutes(r, ctls, opts)
	return r
}

// InitRoutes registers all routes on r.
func InitRoutes(r *gin.Engine, ctls *Controllers, opts Options) {
	// http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if opts.PreviewDir != "" {
		r.Static("/previews", opts.PreviewDir)
	}

	limiter := middleware.NewCooldownLimiter()

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(), middleware.AuditContext())
	{
		catalog := api.Group("/catalog")
		{
			catalog.GET("/categories", ctls.Catalog.Categories)
		}

		// the session id is the capability; submit requires a logged-in user
		wizard := api.Group("/wizard/sessions")
		{
			wizard.POST("", ctls.Wizard.Open)
			wizard.GET("/:id", ctls.Wizard.Get)
			wizard.DELETE("/:id", ctls.Wizard.Discard)

			wizard.PATCH("/:id/fields", ctls.Wizard.ChangeField)
			wizard.PUT("/:id/category", ctls.Wizard.ChangeCategory)

			wizard.POST("/:id/next", ctls.Wizard.Next)
			wizard.POST("/:id/back", ctls.Wizard.Back)

			wizard.POST("/:id/images", ctls.Wizard.AddImages)
			wizard.DELETE("/:id/images/:index", ctls.Wizard.RemoveImage)
			wizard.PUT("/:id/video", ctls.Wizard.SetVideo)
			wizard.DELETE("/:id/video", ctls.Wizard.RemoveVideo)

			wizard.POST("/:id/submit",
				middleware.Cooldown(limiter, middleware.ActionPostAd, opts.PostCooldown),
				ctls.Wizard.Submit,
			)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/reasons", ctls.Report.Reasons)
			reports.POST("",
				middleware.JWTAuth(),
				middleware.Cooldown(limiter, middleware.ActionReport, opts.ReportCooldown),
				ctls.Report.File,
			)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(), middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.GET("/reports", ctls.Report.List)
			admin.GET("/reports/open", ctls.Report.Board)
			admin.PATCH("/reports/:id/status", ctls.Report.UpdateStatus)

			admin.GET("/submissions", ctls.Submission.List)
			admin.GET("/submissions/stats", ctls.Submission.Stats)
			admin.GET("/submissions/:id", ctls.Submission.Get)
		}
	}
}
