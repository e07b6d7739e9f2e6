package router

import (
	"github.com/Geraghw1/defaero-deal-tracker/internal/config"
	"github.com/Geraghw1/defaero-deal-tracker/internal/handler"
	"github.com/Geraghw1/defaero-deal-tracker/internal/importer"
	"github.com/Geraghw1/defaero-deal-tracker/internal/middleware"
	"github.com/Geraghw1/defaero-deal-tracker/internal/repository"
	"github.com/Geraghw1/defaero-deal-tracker/internal/service"
	"github.com/Geraghw1/defaero-deal-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← StorageAdapter
func New(cfg *config.Config, db storage.Adapter) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	oppRepo := repository.NewOpportunityRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(service.StaticCredentials(cfg.Users()), cfg)
	oppSvc := service.NewOpportunityService(oppRepo)
	docSvc := service.NewDocumentService(docRepo, oppRepo)
	xlsxImporter := importer.New(oppRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg.JWTSecret)
	oppsH := handler.NewOpportunitiesHandler(oppSvc)
	docsH := handler.NewDocumentsHandler(docSvc, cfg.MaxUploadMB)
	importH := handler.NewImportHandler(xlsxImporter)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db))
	r.POST("/api/auth/login", middleware.LoginRateLimiter(), authH.Login)
	r.GET("/api/auth/me", authH.Me)

	// Protected
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.POST("/auth/logout", authH.Logout)

		api.GET("/opportunities", oppsH.List)
		api.POST("/opportunities", oppsH.Create)
		api.PUT("/opportunities/:id", oppsH.Update)
		api.DELETE("/opportunities/:id", oppsH.Delete)

		api.GET("/summary", oppsH.Summary)
		api.POST("/import-xlsx", importH.ImportXLSX)

		api.GET("/opportunities/:id/documents", docsH.ListByOpportunity)
		api.POST("/opportunities/:id/documents", docsH.Upload)
		api.GET("/documents/:id/download", docsH.Download)
		api.DELETE("/documents/:id", docsH.Delete)
	}

	return r
}
