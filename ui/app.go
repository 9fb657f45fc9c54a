// Package ui exposes the analytics JSON API over chi.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"douyinsight/ai"
	"douyinsight/internal"
	"douyinsight/internal/analysis"
	"douyinsight/internal/config"
	"douyinsight/internal/etl"
	"douyinsight/internal/predict"
	"douyinsight/ports"
)

// App represents the API application
type App struct {
	router    *chi.Mux
	videos    ports.VideoRepository
	comments  ports.CommentRepository
	assembler *analysis.Assembler
	predictor *predict.Engine
	analyzer  *ai.Analyzer
	importer  *etl.Importer
	data      config.DataConfig
	log       *internal.Logger
}

// NewApp wires the handlers to their services and configures routes
func NewApp(
	videos ports.VideoRepository,
	comments ports.CommentRepository,
	analyzer *ai.Analyzer,
	cfg *config.Config,
) *App {
	app := &App{
		router:    chi.NewRouter(),
		videos:    videos,
		comments:  comments,
		assembler: analysis.NewAssembler(videos, comments),
		predictor: predict.NewEngine(videos, cfg.Predict),
		analyzer:  analyzer,
		importer:  etl.NewImporter(videos, comments),
		data:      cfg.Data,
		log:       internal.NewDefaultLogger("ui"),
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Aggregation endpoints
	a.router.Get("/api/stats/general", a.handleGeneralStats)
	a.router.Get("/api/stats/likes-collects", a.handleLikeCollect)
	a.router.Get("/api/stats/fans-distribution", a.handleFansDistribution)
	a.router.Get("/api/stats/ip-distribution", a.handleIPDistribution)
	a.router.Get("/api/stats/top-users", a.handleTopUsers)
	a.router.Get("/api/stats/top-videos", a.handleTopVideos)
	a.router.Get("/api/stats/videos", a.handleVideoStatistics)
	a.router.Get("/api/stats/publish-hours", a.handlePublishHours)
	a.router.Get("/api/report", a.handleReport)

	// Record endpoints
	a.router.Get("/api/videos", a.handleListVideos)
	a.router.Get("/api/comments", a.handleListComments)
	a.router.Post("/api/import", a.handleImport)
	a.router.Post("/api/clear-data", a.handleClearData)

	// Text statistics
	a.router.Get("/api/keywords", a.handleKeywords)
	a.router.Get("/api/sentiment", a.handleSentiment)

	// Prediction
	a.router.Get("/api/predict/stats", a.handlePredictStats)
	a.router.Get("/api/predict/performance", a.handlePredictPerformance)
	a.router.Get("/api/predict/comparison", a.handlePredictComparison)
	a.router.Post("/api/predict/likes", a.handlePredictLikes)

	// AI collaborator
	a.router.Post("/api/ai/analyze", a.handleAIAnalyze)
	a.router.Post("/api/ai/chat", a.handleAIChat)
}

// Router returns the HTTP handler for the application
func (a *App) Router() http.Handler {
	return a.router
}
