package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gretutor/docs" // registers the OpenAPI document

	"gretutor/internal/handler"
	"gretutor/internal/metrics"
	"gretutor/internal/middleware"
)

// Options holds the non-handler settings for Setup.
type Options struct {
	AllowedOrigins []string
	// StaticDir is served for unmatched GET and HEAD requests. Empty disables it.
	StaticDir string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	tutorH *handler.TutorHandler,
	systemH *handler.SystemHandler,
	healthH *handler.HealthHandler,
	opts Options,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health, metrics and docs
	r.GET("/healthz", healthH.Liveness)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Tutor routes
	r.POST("/ask", tutorH.Ask)
	r.POST("/analyze-image", tutorH.AnalyzeImage)
	r.POST("/analyze-gre-verbal", tutorH.AnalyzeGREVerbal)
	r.POST("/analyze-gre-quant", tutorH.AnalyzeGREQuant)
	r.POST("/analyze-gre-writing", tutorH.AnalyzeGREWriting)
	r.POST("/follow-up", tutorH.FollowUp)
	r.POST("/feedback", tutorH.Feedback)
	r.GET("/tesseract-version", systemH.TesseractVersion)

	r.NoRoute(staticFallback(opts.StaticDir))

	return r
}

// staticFallback serves the front-end directory, index.html included.
func staticFallback(dir string) gin.HandlerFunc {
	notFound := func(c *gin.Context) {
		handler.RespondDetail(c, http.StatusNotFound, "Not Found")
	}
	if dir == "" {
		return notFound
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return notFound
	}

	files := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			notFound(c)
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
