package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rifa-hub/internal/handler/api"
	"rifa-hub/internal/handler/middleware"
	"rifa-hub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	campaignHandler *api.CampaignHandler,
	checkoutHandler *api.CheckoutHandler,
	transactionHandler *api.TransactionHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, campaignHandler, checkoutHandler, transactionHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	campaignHandler *api.CampaignHandler,
	checkoutHandler *api.CheckoutHandler,
	transactionHandler *api.TransactionHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.POST("/webhooks/pix/:provider", webhookHandler.Receive)

	apiGroup := engine.Group("/api")
	{
		campaigns := apiGroup.Group("/campaigns")
		{
			addRoutes(campaigns, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: campaignHandler.GetPublic},
				{Method: http.MethodGet, Path: "/:id/numbers", Handler: campaignHandler.ListNumbers},
				{Method: http.MethodPost, Path: "/:id/checkout", Handler: checkoutHandler.Checkout},
			})
		}

		transactions := apiGroup.Group("/transactions")
		{
			addRoutes(transactions, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: transactionHandler.GetByID},
				{Method: http.MethodGet, Path: "/:id/status", Handler: transactionHandler.GetStatus},
			})
		}

		console := apiGroup.Group("/console")
		console.Use(authMiddleware.RequireOrganizer())
		{
			addRoutes(console, []route{
				{Method: http.MethodPost, Path: "/campaigns", Handler: campaignHandler.Create},
				{Method: http.MethodPost, Path: "/campaigns/:id/publish", Handler: campaignHandler.Publish},
				{Method: http.MethodGet, Path: "/campaigns/:id/summary", Handler: campaignHandler.GetSummary},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
