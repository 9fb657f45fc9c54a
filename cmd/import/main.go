// Command import loads the video and comment CSV files into the
// configured store without starting the server.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"douyinsight/adapters/postgres"
	"douyinsight/adapters/sqlite"
	"douyinsight/internal/config"
	"douyinsight/internal/etl"
	"douyinsight/internal/migration"
	"douyinsight/ports"
)

func main() {
	videoPath := flag.String("video", "", "video CSV/XLSX path (defaults to VIDEO_DATA_FILE)")
	commentPath := flag.String("comment", "", "comment CSV/XLSX path (defaults to COMMENT_DATA_FILE)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *videoPath == "" {
		*videoPath = cfg.Data.VideoFile
	}
	if *commentPath == "" {
		*commentPath = cfg.Data.CommentFile
	}

	var db *sqlx.DB
	switch cfg.Database.Driver {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.Database.URL)
	default:
		db, err = sqlx.Connect("sqlite", cfg.Database.SQLitePath)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.Run(db, cfg.Database.Driver); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	var videos ports.VideoRepository
	var comments ports.CommentRepository
	if cfg.Database.Driver == "postgres" {
		videos = postgres.NewVideoRepository(db)
		comments = postgres.NewCommentRepository(db)
	} else {
		videos = sqlite.NewVideoRepository(db)
		comments = sqlite.NewCommentRepository(db)
	}

	importer := etl.NewImporter(videos, comments)
	summary, err := importer.ImportAll(context.Background(), *videoPath, *commentPath)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Import complete: batch=%s videos=%d comments=%d",
		summary.BatchID, summary.Videos, summary.Comments)
}
