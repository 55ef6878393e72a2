package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	Provider    ProviderConfig
	Upload      UploadConfig
	Cache       CacheConfig
}

// ProviderConfig selects and bounds the analysis provider.
type ProviderConfig struct {
	// Backend is "local", "gemini", or "fake". Empty means gemini when an API
	// key is present, local otherwise.
	Backend string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type UploadConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CacheConfig struct {
	MaxEntries int
	TTL        time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = ":8080"
	} else if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:        port,
		Env:         env,
		DatabaseURL: strings.TrimSpace(os.Getenv("RUNLOG_PG_DSN")),
		Provider:    loadProviderConfig(),
		Upload:      loadUploadConfig(env),
		Cache: CacheConfig{
			MaxEntries: envInt("ANALYSIS_CACHE_ENTRIES", 256),
			TTL:        envDuration("ANALYSIS_CACHE_TTL", 10*time.Minute),
		},
	}, nil
}

func loadProviderConfig() ProviderConfig {
	return ProviderConfig{
		Backend: strings.ToLower(strings.TrimSpace(os.Getenv("ANALYSIS_BACKEND"))),
		APIKey:  firstNonEmpty(strings.TrimSpace(os.Getenv("ANALYSIS_API_KEY")), strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))),
		Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("ANALYSIS_MODEL")), "gemini-2.5-flash"),
		Timeout: envDuration("ANALYSIS_TIMEOUT", 30*time.Second),
	}
}

func loadUploadConfig(env string) UploadConfig {
	endpoint := resolveUploadEndpoint(env)
	return UploadConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOAD_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOAD_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOAD_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("UPLOAD_S3_BUCKET")), "tabnote-uploads"),
		UseSSL:    resolveUploadUseSSL(env),
	}
}

func resolveUploadEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("UPLOAD_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("UPLOAD_S3_ENDPOINT"))
}

func resolveUploadUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("UPLOAD_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// CanUseS3 reports whether the upload config is complete enough for minio.
func (c UploadConfig) CanUseS3() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.AccessKey) != "" &&
		strings.TrimSpace(c.SecretKey) != "" &&
		strings.TrimSpace(c.Bucket) != ""
}
