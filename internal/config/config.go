package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	GoogleAudience       string
	AllowOrigins         []string
	LogstashTCPAddr      string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOBucketStaging   string
	MinIOPublicURL       string
	ElasticsearchAddr    string
	ElasticsearchIndex   string
	SearchTimeout        time.Duration
	SessionTTL           string
	FrontendBaseURL      string
	FFmpegPath           string
	StagingImageMaxBytes int64
	StagingMaxImages     int
	AllowedImageMIMEs    []string
	EnableStagingIntake  bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	imageMax := int64(10 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("STAGING_IMAGE_MAX_BYTES", "10485760"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	maxImages := 20
	if v, err := strconv.Atoi(getenv("STAGING_MAX_IMAGES", "20")); err == nil && v > 0 {
		maxImages = v
	}

	searchTimeout := 800 * time.Millisecond
	if v, err := time.ParseDuration(getenv("SEARCH_TIMEOUT", "800ms")); err == nil && v > 0 {
		searchTimeout = v
	}

	var allowedMIMEs []string
	if raw := strings.TrimSpace(getenv("ALLOWED_IMAGE_MIMES", "")); raw != "" {
		allowedMIMEs = splitAndTrim(raw)
	}

	return Config{
		Port:                 getenv("PORT", "8080"),
		DatabaseURL:          must("DATABASE_URL"),
		JWTSecret:            must("JWT_SECRET"),
		GoogleAudience:       getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:         splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:      getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:        must("MINIO_ENDPOINT"),
		MinIOAccessKey:       must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:       must("MINIO_SECRET_KEY"),
		MinIOUseSSL:          getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketStaging:   getenv("MINIO_BUCKET_STAGING", "meridian-staging"),
		MinIOPublicURL:       getenv("MINIO_PUBLIC_URL", ""),
		ElasticsearchAddr:    getenv("ELASTICSEARCH_ADDR", ""),
		ElasticsearchIndex:   getenv("ELASTICSEARCH_INDEX", "meridian-articles"),
		SearchTimeout:        searchTimeout,
		SessionTTL:           getenv("SESSION_TTL", "24h"),
		FrontendBaseURL:      getenv("FRONTEND_BASE_URL", ""),
		FFmpegPath:           getenv("FFMPEG_PATH", ""),
		StagingImageMaxBytes: imageMax,
		StagingMaxImages:     maxImages,
		AllowedImageMIMEs:    allowedMIMEs,
		EnableStagingIntake:  getenv("ENABLE_STAGING_INTAKE", "true") == "true",
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
