package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/meridianmag/meridian-backend/internal/config"
	"github.com/meridianmag/meridian-backend/internal/logging"
	"github.com/meridianmag/meridian-backend/internal/media"
	miniorepo "github.com/meridianmag/meridian-backend/internal/repository/minio"
	"github.com/meridianmag/meridian-backend/internal/repository/postgres"
	"github.com/meridianmag/meridian-backend/internal/service"
	transport "github.com/meridianmag/meridian-backend/internal/transport/http"
	"github.com/meridianmag/meridian-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}
	storage := miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL)

	var esClient *elasticsearch.Client
	if cfg.ElasticsearchAddr != "" {
		esClient, err = elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.ElasticsearchAddr},
		})
		if err != nil {
			log.Printf("elasticsearch disabled: %v", err)
			esClient = nil
		}
	}

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	stagingRepo := postgres.NewStagingRepo(db)
	stagingImageRepo := postgres.NewStagingImageRepo(db)
	articleRepo := postgres.NewArticleRepo(db)
	articleImageRepo := postgres.NewArticleImageRepo(db)
	eventRepo := postgres.NewEventRepo(db)
	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, sessionTTL)
	authService := service.NewAuthService(userRepo, sessionRepo, jwtManager, cfg.GoogleAudience)
	eventService := service.NewEventService(eventRepo)
	searchService := service.NewSearchService(esClient, cfg.ElasticsearchIndex, cfg.SearchTimeout)
	stagingService := service.NewStagingService(
		stagingRepo,
		stagingImageRepo,
		articleRepo,
		articleImageRepo,
		storage,
		service.StagingServiceConfig{
			Bucket:           cfg.MinIOBucketStaging,
			MaxImages:        cfg.StagingMaxImages,
			MaxImageBytes:    cfg.StagingImageMaxBytes,
			AllowedMIMETypes: cfg.AllowedImageMIMEs,
			ImageProcessor:   media.NewFFmpegProcessor(cfg.FFmpegPath, 0),
		},
	)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterPages(e, cfg.FrontendBaseURL)
	transport.RegisterSwagger(e)
	transport.RegisterAuth(e, authService)
	transport.RegisterEvents(e, eventService)
	transport.RegisterSearch(e, searchService)
	transport.RegisterStaging(e, authService, stagingService, searchService, cfg.EnableStagingIntake)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
