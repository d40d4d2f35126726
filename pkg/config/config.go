package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/rocket/config"
	ConfigFileName    = "rocket.yml"
)

// ValidStorageBackends is the list of valid resume file storage backends
var ValidStorageBackends = []string{"local", "s3"}

// ValidAIProviders is the list of valid AI provider types
var ValidAIProviders = []string{"none", "gemini", "openai"}

// RocketConfig holds all Rocket configuration settings
type RocketConfig struct {
	// AllowedOrigins is a list of origins permitted by CORS
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`

	// APIListLimitMax is the maximum number of results for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// SessionTokenTTL is the TTL for session tokens in seconds
	SessionTokenTTL int `yaml:"session_token_ttl" json:"session_token_ttl"`

	// TokenSecret signs session tokens. Required to run the server.
	TokenSecret string `yaml:"token_secret" json:"-"`

	// MaxUploadBytes caps resume upload size
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`

	// StorageBackend selects where uploaded files live ("local" or "s3")
	StorageBackend string `yaml:"storage_backend" json:"storage_backend"`

	// StorageDir is the directory for the local storage backend
	StorageDir string `yaml:"storage_dir" json:"storage_dir"`

	// S3Bucket, S3Endpoint and S3Region configure the s3 backend.
	// A custom endpoint supports S3-compatible stores such as R2.
	S3Bucket   string `yaml:"s3_bucket" json:"s3_bucket"`
	S3Endpoint string `yaml:"s3_endpoint" json:"s3_endpoint"`
	S3Region   string `yaml:"s3_region" json:"s3_region"`

	// QueueURL is the AMQP broker URL. Empty disables the async
	// analysis pipeline; uploads are then left for inline analysis.
	QueueURL string `yaml:"queue_url" json:"-"`

	// QueueWorkers is the consumer pool size for `rocketctl worker`
	QueueWorkers int `yaml:"queue_workers" json:"queue_workers"`

	// AIProvider selects the optional LLM provider ("none", "gemini", "openai")
	AIProvider string `yaml:"ai_provider" json:"ai_provider"`

	// AIModel is the model name passed to the provider
	AIModel string `yaml:"ai_model" json:"ai_model"`

	// AutosaveMinInterval is the minimum seconds between auto-save commits
	AutosaveMinInterval int `yaml:"autosave_min_interval" json:"autosave_min_interval"`

	// AutosavePush pushes after each auto-save commit
	AutosavePush bool `yaml:"autosave_push" json:"autosave_push"`

	// AutosaveRemote is the git remote pushed to
	AutosaveRemote string `yaml:"autosave_remote" json:"autosave_remote"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *RocketConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *RocketConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	// Load config
	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *RocketConfig {
	return &RocketConfig{
		AllowedOrigins:      []string{"http://localhost:3000", "http://localhost:5173"},
		APIListLimitMax:     100,
		SessionTokenTTL:     86400,
		MaxUploadBytes:      10 << 20,
		StorageBackend:      "local",
		StorageDir:          ".rocket/storage",
		QueueWorkers:        4,
		AIProvider:          "none",
		AIModel:             "gemini-2.0-flash",
		AutosaveMinInterval: 300,
		AutosavePush:        false,
		AutosaveRemote:      "origin",
		sources:             make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*RocketConfig, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("ROCKET_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig RocketConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	// Override with environment variables
	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"allowed_origins", "api_list_limit_max", "session_token_ttl",
		"token_secret", "max_upload_bytes", "storage_backend", "storage_dir",
		"s3_bucket", "s3_endpoint", "s3_region", "queue_url", "queue_workers",
		"ai_provider", "ai_model", "autosave_min_interval", "autosave_push",
		"autosave_remote",
	}
}

func (c *RocketConfig) applyFileConfig(file *RocketConfig) {
	if len(file.AllowedOrigins) > 0 {
		c.AllowedOrigins = file.AllowedOrigins
		c.sources["allowed_origins"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.SessionTokenTTL != 0 {
		c.SessionTokenTTL = file.SessionTokenTTL
		c.sources["session_token_ttl"] = "file"
	}
	if file.TokenSecret != "" {
		c.TokenSecret = file.TokenSecret
		c.sources["token_secret"] = "file"
	}
	if file.MaxUploadBytes != 0 {
		c.MaxUploadBytes = file.MaxUploadBytes
		c.sources["max_upload_bytes"] = "file"
	}
	if file.StorageBackend != "" {
		c.StorageBackend = file.StorageBackend
		c.sources["storage_backend"] = "file"
	}
	if file.StorageDir != "" {
		c.StorageDir = file.StorageDir
		c.sources["storage_dir"] = "file"
	}
	if file.S3Bucket != "" {
		c.S3Bucket = file.S3Bucket
		c.sources["s3_bucket"] = "file"
	}
	if file.S3Endpoint != "" {
		c.S3Endpoint = file.S3Endpoint
		c.sources["s3_endpoint"] = "file"
	}
	if file.S3Region != "" {
		c.S3Region = file.S3Region
		c.sources["s3_region"] = "file"
	}
	if file.QueueURL != "" {
		c.QueueURL = file.QueueURL
		c.sources["queue_url"] = "file"
	}
	if file.QueueWorkers != 0 {
		c.QueueWorkers = file.QueueWorkers
		c.sources["queue_workers"] = "file"
	}
	if file.AIProvider != "" {
		c.AIProvider = file.AIProvider
		c.sources["ai_provider"] = "file"
	}
	if file.AIModel != "" {
		c.AIModel = file.AIModel
		c.sources["ai_model"] = "file"
	}
	if file.AutosaveMinInterval != 0 {
		c.AutosaveMinInterval = file.AutosaveMinInterval
		c.sources["autosave_min_interval"] = "file"
	}
	if file.AutosavePush {
		c.AutosavePush = true
		c.sources["autosave_push"] = "file"
	}
	if file.AutosaveRemote != "" {
		c.AutosaveRemote = file.AutosaveRemote
		c.sources["autosave_remote"] = "file"
	}
}

func (c *RocketConfig) applyEnvConfig() {
	if val := os.Getenv("ROCKET_ALLOWED_ORIGINS"); val != "" {
		c.AllowedOrigins = splitAndTrim(val)
		c.sources["allowed_origins"] = "environment"
	}
	if val := os.Getenv("ROCKET_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("ROCKET_SESSION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTokenTTL = i
			c.sources["session_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("ROCKET_TOKEN_SECRET"); val != "" {
		c.TokenSecret = val
		c.sources["token_secret"] = "environment"
	}
	if val := os.Getenv("ROCKET_MAX_UPLOAD_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxUploadBytes = i
			c.sources["max_upload_bytes"] = "environment"
		}
	}
	if val := os.Getenv("ROCKET_STORAGE_BACKEND"); val != "" {
		c.StorageBackend = val
		c.sources["storage_backend"] = "environment"
	}
	if val := os.Getenv("ROCKET_STORAGE_DIR"); val != "" {
		c.StorageDir = val
		c.sources["storage_dir"] = "environment"
	}
	if val := os.Getenv("ROCKET_S3_BUCKET"); val != "" {
		c.S3Bucket = val
		c.sources["s3_bucket"] = "environment"
	}
	if val := os.Getenv("ROCKET_S3_ENDPOINT"); val != "" {
		c.S3Endpoint = val
		c.sources["s3_endpoint"] = "environment"
	}
	if val := os.Getenv("ROCKET_S3_REGION"); val != "" {
		c.S3Region = val
		c.sources["s3_region"] = "environment"
	}
	if val := os.Getenv("ROCKET_QUEUE_URL"); val != "" {
		c.QueueURL = val
		c.sources["queue_url"] = "environment"
	}
	if val := os.Getenv("ROCKET_QUEUE_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.QueueWorkers = i
			c.sources["queue_workers"] = "environment"
		}
	}
	if val := os.Getenv("ROCKET_AI_PROVIDER"); val != "" {
		c.AIProvider = val
		c.sources["ai_provider"] = "environment"
	}
	if val := os.Getenv("ROCKET_AI_MODEL"); val != "" {
		c.AIModel = val
		c.sources["ai_model"] = "environment"
	}
	if val := os.Getenv("ROCKET_AUTOSAVE_MIN_INTERVAL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.AutosaveMinInterval = i
			c.sources["autosave_min_interval"] = "environment"
		}
	}
	if val := os.Getenv("ROCKET_AUTOSAVE_PUSH"); val != "" {
		c.AutosavePush = val == "true" || val == "1"
		c.sources["autosave_push"] = "environment"
	}
	if val := os.Getenv("ROCKET_AUTOSAVE_REMOTE"); val != "" {
		c.AutosaveRemote = val
		c.sources["autosave_remote"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *RocketConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *RocketConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the session token TTL as a duration
func (c *RocketConfig) TokenTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Second
}

// MinSaveInterval returns the auto-save gate as a duration
func (c *RocketConfig) MinSaveInterval() time.Duration {
	return time.Duration(c.AutosaveMinInterval) * time.Second
}

// QueueEnabled reports whether the async analysis pipeline is configured
func (c *RocketConfig) QueueEnabled() bool {
	return c.QueueURL != ""
}

// AIEnabled reports whether an LLM provider is configured
func (c *RocketConfig) AIEnabled() bool {
	return c.AIProvider != "" && c.AIProvider != "none"
}

// Validate validates the configuration
func (c *RocketConfig) Validate() error {
	// Validate allowed origins are absolute URLs
	for _, origin := range c.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid allowed_origins value: %s", origin)
		}
	}

	validBackends := make(map[string]bool)
	for _, b := range ValidStorageBackends {
		validBackends[b] = true
	}
	if !validBackends[c.StorageBackend] {
		return fmt.Errorf("invalid storage_backend: %s", c.StorageBackend)
	}
	if c.StorageBackend == "s3" && c.S3Bucket == "" {
		return fmt.Errorf("s3_bucket is required when storage_backend is s3")
	}

	validProviders := make(map[string]bool)
	for _, p := range ValidAIProviders {
		validProviders[p] = true
	}
	if !validProviders[c.AIProvider] {
		return fmt.Errorf("invalid ai_provider: %s", c.AIProvider)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.SessionTokenTTL <= 0 {
		return fmt.Errorf("session_token_ttl must be positive")
	}
	if c.QueueWorkers < 1 {
		return fmt.Errorf("queue_workers must be at least 1")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources.
// Secret values are masked.
func (c *RocketConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "allowed_origins", Value: strings.Join(c.AllowedOrigins, ","), Source: c.Source("allowed_origins")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "session_token_ttl", Value: strconv.Itoa(c.SessionTokenTTL), Source: c.Source("session_token_ttl")},
		{Name: "token_secret", Value: maskSecret(c.TokenSecret), Source: c.Source("token_secret")},
		{Name: "max_upload_bytes", Value: strconv.FormatInt(c.MaxUploadBytes, 10), Source: c.Source("max_upload_bytes")},
		{Name: "storage_backend", Value: c.StorageBackend, Source: c.Source("storage_backend")},
		{Name: "storage_dir", Value: c.StorageDir, Source: c.Source("storage_dir")},
		{Name: "s3_bucket", Value: c.S3Bucket, Source: c.Source("s3_bucket")},
		{Name: "s3_endpoint", Value: c.S3Endpoint, Source: c.Source("s3_endpoint")},
		{Name: "s3_region", Value: c.S3Region, Source: c.Source("s3_region")},
		{Name: "queue_url", Value: maskSecret(c.QueueURL), Source: c.Source("queue_url")},
		{Name: "queue_workers", Value: strconv.Itoa(c.QueueWorkers), Source: c.Source("queue_workers")},
		{Name: "ai_provider", Value: c.AIProvider, Source: c.Source("ai_provider")},
		{Name: "ai_model", Value: c.AIModel, Source: c.Source("ai_model")},
		{Name: "autosave_min_interval", Value: strconv.Itoa(c.AutosaveMinInterval), Source: c.Source("autosave_min_interval")},
		{Name: "autosave_push", Value: strconv.FormatBool(c.AutosavePush), Source: c.Source("autosave_push")},
		{Name: "autosave_remote", Value: c.AutosaveRemote, Source: c.Source("autosave_remote")},
	}
}

// FormatText returns a text representation of the configuration
func (c *RocketConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *RocketConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
