package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// PostgreSQL file records
	DatabaseURL string

	// S3-compatible audio storage
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3UseSSL    bool
	AudioPrefix string

	// Groq translation
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// Azure speech synthesis
	SpeechKey    string
	SpeechRegion string
	VoiceEN      string
	VoiceHI      string
	VoiceGU      string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Stage snapshots
	OutputDir string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Job state
	JobTTL time.Duration

	// Per-IP request limit on processing routes
	RateLimitRPM int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOr("S3_BUCKET", "audio-files"),
		S3Region:    os.Getenv("S3_REGION"),
		S3UseSSL:    envBool("S3_USE_SSL", true),
		AudioPrefix: envOr("AUDIO_PREFIX", "audio"),

		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqModel:   os.Getenv("GROQ_MODEL"),
		GroqBaseURL: os.Getenv("GROQ_BASE_URL"),

		SpeechKey:    os.Getenv("SPEECH_KEY"),
		SpeechRegion: os.Getenv("SPEECH_REGION"),
		VoiceEN:      os.Getenv("VOICE_EN"),
		VoiceHI:      os.Getenv("VOICE_HI"),
		VoiceGU:      os.Getenv("VOICE_GU"),

		APIKey: os.Getenv("API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		OutputDir: envOr("OUTPUT_DIR", "output"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 32),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		RateLimitRPM: envInt("RATE_LIMIT_RPM", 30),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 32
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.RateLimitRPM <= 0 {
		cfg.RateLimitRPM = 30
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.S3Endpoint == "" {
		return fmt.Errorf("S3_ENDPOINT is required")
	}
	if c.S3AccessKey == "" {
		return fmt.Errorf("S3_ACCESS_KEY is required")
	}
	if c.S3SecretKey == "" {
		return fmt.Errorf("S3_SECRET_KEY is required")
	}
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.SpeechKey == "" {
		return fmt.Errorf("SPEECH_KEY is required")
	}
	if c.SpeechRegion == "" {
		return fmt.Errorf("SPEECH_REGION is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
