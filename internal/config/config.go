package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	OCR    OCRConfig
	Upload UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings. Origins, methods, and headers accept a
// comma-separated list or "*".
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// OCRConfig holds settings for the external OCR/LLM provider.
type OCRConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	OCRModel    string  `mapstructure:"ocr_model"`
	ChatModel   string  `mapstructure:"chat_model"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
	Temperature float64 `mapstructure:"temperature"`
}

// UploadConfig holds inbound file validation settings.
type UploadConfig struct {
	MaxFileSize   int64    `mapstructure:"max_file_size"`
	AllowedTypes  []string `mapstructure:"allowed_types"`
	MaxBatchFiles int      `mapstructure:"max_batch_files"`
}

// Load reads configuration from environment variables with the SPLITBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SPLITBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("cors.allowed_methods", "*")
	v.SetDefault("cors.allowed_headers", "*")
	v.SetDefault("cors.allow_credentials", true)

	// OCR provider defaults
	v.SetDefault("ocr.provider", "mistral")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.ocr_model", "mistral-ocr-latest")
	v.SetDefault("ocr.chat_model", "mistral-large-latest")
	v.SetDefault("ocr.timeout_secs", 120)
	v.SetDefault("ocr.temperature", 0.1)

	// Upload defaults
	v.SetDefault("upload.max_file_size", 10*1024*1024)
	v.SetDefault("upload.allowed_types", "image/jpeg,image/png,image/jpg")
	v.SetDefault("upload.max_batch_files", 100)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "SPLITBILL_SERVER_PORT",
		"server.read_timeout":    "SPLITBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "SPLITBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":     "SPLITBILL_SERVER_ENVIRONMENT",
		"log.level":              "SPLITBILL_LOG_LEVEL",
		"log.format":             "SPLITBILL_LOG_FORMAT",
		"cors.allowed_origins":   "SPLITBILL_CORS_ALLOWED_ORIGINS",
		"cors.allowed_methods":   "SPLITBILL_CORS_ALLOWED_METHODS",
		"cors.allowed_headers":   "SPLITBILL_CORS_ALLOWED_HEADERS",
		"cors.allow_credentials": "SPLITBILL_CORS_ALLOW_CREDENTIALS",
		"ocr.provider":           "SPLITBILL_OCR_PROVIDER",
		"ocr.api_key":            "SPLITBILL_OCR_API_KEY",
		"ocr.ocr_model":          "SPLITBILL_OCR_OCR_MODEL",
		"ocr.chat_model":         "SPLITBILL_OCR_CHAT_MODEL",
		"ocr.timeout_secs":       "SPLITBILL_OCR_TIMEOUT_SECS",
		"ocr.temperature":        "SPLITBILL_OCR_TEMPERATURE",
		"upload.max_file_size":   "SPLITBILL_UPLOAD_MAX_FILE_SIZE",
		"upload.allowed_types":   "SPLITBILL_UPLOAD_ALLOWED_TYPES",
		"upload.max_batch_files": "SPLITBILL_UPLOAD_MAX_BATCH_FILES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SPLITBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SPLITBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins:   SplitList(v.GetString("cors.allowed_origins")),
		AllowedMethods:   SplitList(v.GetString("cors.allowed_methods")),
		AllowedHeaders:   SplitList(v.GetString("cors.allowed_headers")),
		AllowCredentials: v.GetBool("cors.allow_credentials"),
	}
	cfg.OCR = OCRConfig{
		Provider:    v.GetString("ocr.provider"),
		APIKey:      v.GetString("ocr.api_key"),
		OCRModel:    v.GetString("ocr.ocr_model"),
		ChatModel:   v.GetString("ocr.chat_model"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
		Temperature: v.GetFloat64("ocr.temperature"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSize:   v.GetInt64("upload.max_file_size"),
		AllowedTypes:  SplitList(v.GetString("upload.allowed_types")),
		MaxBatchFiles: v.GetInt("upload.max_batch_files"),
	}

	return cfg, nil
}

// SplitList parses a comma-separated config value into a trimmed list.
// The value "*" yields the single-element wildcard list.
func SplitList(val string) []string {
	if strings.TrimSpace(val) == "*" {
		return []string{"*"}
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
