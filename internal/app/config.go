package app

import (
	"strings"
	"time"

	"github.com/voxscribe/transcription-backend/internal/platform/envutil"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type Config struct {
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
	Port              string
	AllowOrigins      []string
	StorageBackend    string // "local" or "gcs"
	UploadDir         string
	DefaultLanguageID uint // 0 = unset; fall back to first active language
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	port := envutil.GetEnv("PORT", "8080", log)
	origins := envutil.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
	storageBackend := envutil.GetEnv("STORAGE_BACKEND", "local", log)
	uploadDir := envutil.GetEnv("UPLOAD_DIR", "uploads", log)
	defaultLanguageID := envutil.GetEnvAsInt("UPLOAD_DEFAULT_LANGUAGE_ID", 0, log)

	return Config{
		JWTSecretKey:      jwtSecretKey,
		AccessTokenTTL:    time.Duration(accessTokenTTLSeconds) * time.Second,
		Port:              port,
		AllowOrigins:      strings.Split(origins, ","),
		StorageBackend:    storageBackend,
		UploadDir:         uploadDir,
		DefaultLanguageID: uint(defaultLanguageID),
	}
}
