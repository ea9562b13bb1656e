package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Storage    StorageConfig
	Recognizer RecognizerConfig
	Cleanup    CleanupConfig
	Clipboard  ClipboardConfig
	Browser    BrowserConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds the embedded history database settings.
type DBConfig struct {
	Path    string `mapstructure:"path"`
	MaxOpen int    `mapstructure:"max_open"`
	MaxIdle int    `mapstructure:"max_idle"`
}

// DSN returns the sqlite connection string.
func (d *DBConfig) DSN() string {
	return "file:" + d.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// MigrateDSN returns the connection URL in the form the migration tool
// expects.
func (d *DBConfig) MigrateDSN() string {
	return "sqlite://" + d.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// StorageConfig holds capture-image storage settings. Backend is "local"
// (directory on disk) or "s3".
type StorageConfig struct {
	Backend       string `mapstructure:"backend"`
	LocalDir      string `mapstructure:"local_dir"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// RecognizerConfig holds settings for the OCR provider.
type RecognizerConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	DefaultFormat string `mapstructure:"default_format"`
}

// CleanupConfig holds the default text post-processing toggles.
type CleanupConfig struct {
	RemoveLineBreaks   bool `mapstructure:"remove_line_breaks"`
	MergeSpaces        bool `mapstructure:"merge_spaces"`
	RemoveHeaderFooter bool `mapstructure:"remove_header_footer"`
}

// ClipboardConfig holds clipboard host settings.
type ClipboardConfig struct {
	// FallbackCommand overrides the platform copy command used when the
	// primary clipboard write fails. Empty = autodetect.
	FallbackCommand string        `mapstructure:"fallback_command"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
}

// BrowserConfig holds settings for the page-capture browser source.
type BrowserConfig struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local browser via the rod launcher.
	RemoteURL  string        `mapstructure:"remote_url"`
	NavTimeout time.Duration `mapstructure:"nav_timeout"`
}

// CORSConfig holds CORS settings for the extension-facing API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SNAPTEX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SNAPTEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8532")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.path", "snaptex.db")
	v.SetDefault("db.max_open", 1)
	v.SetDefault("db.max_idle", 1)

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "captures")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "snaptex-captures")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presign_expiry", 3600)

	// Recognizer defaults
	v.SetDefault("recognizer.provider", "gemini")
	v.SetDefault("recognizer.api_key", "")
	v.SetDefault("recognizer.model", "gemini-2.0-flash")
	v.SetDefault("recognizer.timeout_secs", 30)
	v.SetDefault("recognizer.default_format", "text")

	// Cleanup defaults
	v.SetDefault("cleanup.remove_line_breaks", true)
	v.SetDefault("cleanup.merge_spaces", false)
	v.SetDefault("cleanup.remove_header_footer", false)

	// Clipboard defaults
	v.SetDefault("clipboard.fallback_command", "")
	v.SetDefault("clipboard.write_timeout", "5s")

	// Browser defaults
	v.SetDefault("browser.remote_url", "")
	v.SetDefault("browser.nav_timeout", "30s")

	// CORS defaults (extension origins are wildcarded by the browser; keep
	// localhost for the dev UI)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "SNAPTEX_SERVER_PORT",
		"server.read_timeout":          "SNAPTEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "SNAPTEX_SERVER_WRITE_TIMEOUT",
		"server.environment":           "SNAPTEX_SERVER_ENVIRONMENT",
		"db.path":                      "SNAPTEX_DB_PATH",
		"db.max_open":                  "SNAPTEX_DB_MAX_OPEN",
		"db.max_idle":                  "SNAPTEX_DB_MAX_IDLE",
		"storage.backend":              "SNAPTEX_STORAGE_BACKEND",
		"storage.local_dir":            "SNAPTEX_STORAGE_LOCAL_DIR",
		"storage.region":               "SNAPTEX_STORAGE_REGION",
		"storage.bucket":               "SNAPTEX_STORAGE_BUCKET",
		"storage.endpoint":             "SNAPTEX_STORAGE_ENDPOINT",
		"storage.access_key":           "SNAPTEX_STORAGE_ACCESS_KEY",
		"storage.secret_key":           "SNAPTEX_STORAGE_SECRET_KEY",
		"storage.presign_expiry":       "SNAPTEX_STORAGE_PRESIGN_EXPIRY",
		"recognizer.provider":          "SNAPTEX_RECOGNIZER_PROVIDER",
		"recognizer.api_key":           "SNAPTEX_RECOGNIZER_API_KEY",
		"recognizer.model":             "SNAPTEX_RECOGNIZER_MODEL",
		"recognizer.timeout_secs":      "SNAPTEX_RECOGNIZER_TIMEOUT_SECS",
		"recognizer.default_format":    "SNAPTEX_RECOGNIZER_DEFAULT_FORMAT",
		"cleanup.remove_line_breaks":   "SNAPTEX_CLEANUP_REMOVE_LINE_BREAKS",
		"cleanup.merge_spaces":         "SNAPTEX_CLEANUP_MERGE_SPACES",
		"cleanup.remove_header_footer": "SNAPTEX_CLEANUP_REMOVE_HEADER_FOOTER",
		"clipboard.fallback_command":   "SNAPTEX_CLIPBOARD_FALLBACK_COMMAND",
		"clipboard.write_timeout":      "SNAPTEX_CLIPBOARD_WRITE_TIMEOUT",
		"browser.remote_url":           "SNAPTEX_BROWSER_REMOTE_URL",
		"browser.nav_timeout":          "SNAPTEX_BROWSER_NAV_TIMEOUT",
		"cors.allowed_origins":         "SNAPTEX_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Comma-separated origins come through as a single string.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	return &cfg, nil
}
