package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"douyinsight/adapters/llm"
	"douyinsight/adapters/postgres"
	"douyinsight/adapters/sqlite"
	"douyinsight/ai"
	"douyinsight/internal/config"
	"douyinsight/internal/errors"
	"douyinsight/internal/migration"
	"douyinsight/ports"
	"douyinsight/ui"
)

// initDatabase opens the configured store and applies the schema
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.Database.Driver {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.Database.URL)
	case "sqlite":
		db, err = sqlx.Connect("sqlite", cfg.Database.SQLitePath)
	default:
		return nil, errors.ConfigInvalid("unsupported database driver: " + cfg.Database.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if err := migration.Run(db, cfg.Database.Driver); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var videos ports.VideoRepository
	var comments ports.CommentRepository
	switch cfg.Database.Driver {
	case "postgres":
		videos = postgres.NewVideoRepository(db)
		comments = postgres.NewCommentRepository(db)
	default:
		videos = sqlite.NewVideoRepository(db)
		comments = sqlite.NewCommentRepository(db)
	}
	log.Printf("Using %s store", cfg.Database.Driver)

	var client ports.LLMClient
	if cfg.AI.APIKey != "" {
		client, err = llm.NewClient(cfg.AI)
		if err != nil {
			log.Printf("AI collaborator unavailable: %v", err)
		}
	} else {
		log.Println("No AI API key configured, AI endpoints disabled")
	}
	analyzer := ai.NewAnalyzer(client, videos, cfg.AI)

	app := ui.NewApp(videos, comments, analyzer, cfg)

	addr := ":" + cfg.Server.Port
	log.Printf("Listening on %s", addr)
	if err := http.ListenAndServe(addr, app.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
