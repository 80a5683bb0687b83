package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"plant-bot/internal/domain/entity"
)

type Config struct {
	TelegramToken string
	HTTPAddr      string

	ModelPath       string
	LabelsPath      string
	ModelInputSize  int
	ModelConfidence float32
	ModelIoU        float32

	SessionTTL       time.Duration
	DedupPolicy      entity.DedupPolicy
	DefaultLocale    entity.Locale
	ThumbnailMaxSide int
	MaxUploadBytes   int
	MaxImagePixels   int

	LogFile    string
	Production bool
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		ModelPath:        getEnv("MODEL_PATH", "models/best.onnx"),
		LabelsPath:       getEnv("LABELS_PATH", "models/data.yaml"),
		ModelInputSize:   getEnvAsInt("MODEL_INPUT_SIZE", 640),
		ModelConfidence:  getEnvAsFloat32("MODEL_CONFIDENCE", 0.25),
		ModelIoU:         getEnvAsFloat32("MODEL_IOU", 0.7),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		ThumbnailMaxSide: getEnvAsInt("THUMBNAIL_MAX_SIDE", 320),
		MaxUploadBytes:   getEnvAsInt("MAX_UPLOAD_MB", 10) * 1024 * 1024,
		MaxImagePixels:   getEnvAsInt("MAX_IMAGE_PIXELS", 40_000_000),
		LogFile:          getEnv("LOG_FILE", "logs/plant-bot.log"),
		Production:       getEnv("APP_ENV", "development") == "production",
	}
	// HTTP_ADDR="" явно отключает HTTP
	if v, ok := os.LookupEnv("HTTP_ADDR"); ok && v == "" {
		cfg.HTTPAddr = ""
	}

	policy, ok := entity.ParseDedupPolicy(os.Getenv("DEDUP_POLICY"))
	if !ok {
		return nil, errors.Errorf("DEDUP_POLICY must be %q or %q", entity.DedupByPair, entity.DedupByLabel)
	}
	cfg.DedupPolicy = policy

	locale, ok := entity.ParseLocale(getEnv("DEFAULT_LOCALE", string(entity.SupportedLocales[0])))
	if !ok {
		return nil, errors.Errorf("DEFAULT_LOCALE must be one of %v", entity.SupportedLocales)
	}
	cfg.DefaultLocale = locale

	if cfg.TelegramToken == "" && cfg.HTTPAddr == "" {
		return nil, errors.New("nothing to serve: set TELEGRAM_TOKEN or HTTP_ADDR")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
