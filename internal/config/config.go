package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env            string
	HTTPAddr       string
	StaticDir      string
	MaxUploadBytes int64
	JWTSecret      string
	APIKeyHash     string
	RatePerMinute  int
	AI             AIConfig
	Vision         VisionConfig
	S3             S3Config
	Logging        LoggingConfig
}

type AIConfig struct {
	APIKey     string
	Model      string
	Endpoint   string
	Timeout    time.Duration
	Concurrent bool
	RateRPS    float64
	RateBurst  int

	// Temperature is the sampling temperature sent with every completion.
	Temperature float64
}

type VisionConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

type S3Config struct {
	Endpoint       string
	PublicEndpoint string
	Bucket         string
	AccessKey      string
	SecretKey      string
	Region         string
	UseSSL         bool
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:            getenv("APP_ENV", "dev"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		StaticDir:      os.Getenv("STATIC_DIR"),
		MaxUploadBytes: getenvInt64("MAX_UPLOAD_BYTES", 10<<20),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		APIKeyHash:     os.Getenv("API_KEY_HASH"),
		RatePerMinute:  int(getenvInt64("RATE_LIMIT_PER_MINUTE", 30)),
		AI:             LoadAI(),
		Vision: VisionConfig{
			APIKey:   os.Getenv("VISION_API_KEY"),
			Endpoint: os.Getenv("VISION_ENDPOINT"),
			Timeout:  getenvDuration("VISION_TIMEOUT", 15*time.Second),
		},
		S3: S3Config{
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         os.Getenv("S3_BUCKET"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Region:         getenv("S3_REGION", "us-east-1"),
			UseSSL:         getenvBool("S3_USE_SSL", true),
		},
		Logging: LoggingConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	if cfg.APIKeyHash != "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when API_KEY_HASH is set")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}

// LoadAI reads the text-completion settings on their own; the CLI needs
// nothing else.
func LoadAI() AIConfig {
	return AIConfig{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		Endpoint:    os.Getenv("GEMINI_ENDPOINT"),
		Timeout:     getenvDuration("AI_TIMEOUT", 20*time.Second),
		Concurrent:  getenvBool("AI_CONCURRENT", false),
		RateRPS:     getenvFloat("AI_RATE_RPS", 2),
		RateBurst:   int(getenvInt64("AI_RATE_BURST", 2)),
		Temperature: getenvFloat("GEMINI_TEMPERATURE", 0.1),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
