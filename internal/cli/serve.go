// Package cli provides the clubsited commands.
package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lcac-club/clubsite/internal/api/handlers"
	"github.com/lcac-club/clubsite/internal/config"
	"github.com/lcac-club/clubsite/internal/generative"
	"github.com/lcac-club/clubsite/internal/jobs"
	"github.com/lcac-club/clubsite/internal/knowledge"
	"github.com/lcac-club/clubsite/internal/resolver"
	"github.com/lcac-club/clubsite/internal/server"
	"github.com/lcac-club/clubsite/internal/social"
	"github.com/lcac-club/clubsite/internal/storage"
	"github.com/lcac-club/clubsite/internal/telemetry"
)

// knowledgeSnapshotTTL bounds how stale a cached merged knowledge
// document may get before it is rebuilt from disk.
const knowledgeSnapshotTTL = 5 * time.Minute

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the site API server",
		Long:  "Start the club site API server: feed data, chat and the social cache endpoints",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	var blobStore *storage.S3Client
	if cfg.HasS3() {
		s3Config := storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		}
		s3Client, err := storage.NewS3Client(ctx, s3Config)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		blobStore = s3Client
	} else {
		log.Println("remote store not configured; serving feeds from local files only")
	}

	var gen knowledge.Generator
	if cfg.HasOpenAI() {
		gen = generative.NewClientWithConfig(generative.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		})
		log.Println("generative backend enabled")
	}

	knowledgeStore := knowledge.NewStore(knowledgeSnapshotTTL)
	router := knowledge.NewRouter(knowledgeStore, knowledge.NewMatcher(), gen, knowledge.RouterOptions{
		DefaultDocs: cfg.KnowledgeFiles,
		MinLocalLen: cfg.MinLocalAnswerLen,
	})

	// A nil *S3Client must stay a nil interface for the fallback chain
	// to skip the remote tier.
	var remoteTier resolver.BlobStore
	if blobStore != nil {
		remoteTier = blobStore
	}
	feedResolver := resolver.New(remoteTier, cfg.DataDir)

	var fetcher social.MediaFetcher
	if cfg.HasInstagram() {
		fetcher = social.NewInstagramClient(social.InstagramConfig{
			AccessToken: cfg.IGAccessToken,
			UserID:      cfg.IGUserID,
			Hashtag:     cfg.IGHashtag,
			Limit:       cfg.IGLimit,
		})
	}
	var cacheStore social.CacheStore
	if blobStore != nil {
		cacheStore = blobStore
	}
	socialSvc := social.NewService(fetcher, cacheStore)

	var refreshWorker *jobs.Worker
	if fetcher != nil {
		refreshWorker = jobs.NewWorker(jobs.NewSocialRefreshTask(socialSvc), cfg.RefreshInterval)
		go refreshWorker.Start(ctx)
		log.Println("social refresh worker started")
	}

	routerCfg := server.RouterConfig{
		AdminToken:      cfg.AdminToken,
		DataHandler:     handlers.NewDataHandler(feedResolver),
		ChatHandler:     handlers.NewChatHandler(router),
		SocialHandler:   handlers.NewSocialHandler(socialSvc),
		ProjectsHandler: handlers.NewProjectsFeedHandler(feedResolver, socialSvc),
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.NewRouter(routerCfg),
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if refreshWorker != nil {
		refreshWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
