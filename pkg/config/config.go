package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/logging"
)

const (
	DefaultConfigPath = "/etc/swapi/config"
	ConfigFileName    = "swapi.yml"
)

// ValidLogFormats is the list of accepted log_format values
var ValidLogFormats = []string{"auto", "json", "console"}

// Config holds all swapi server configuration settings
type Config struct {
	// BindAddress is the interface the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP listen port
	Port int `yaml:"port" json:"port"`

	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// LogLevel is the minimum level written by the server logger
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat selects json or console output, auto picks by terminal
	LogFormat string `yaml:"log_format" json:"log_format"`

	// DebugRoutes mounts GET /users, which lists every account
	DebugRoutes bool `yaml:"debug_routes" json:"debug_routes"`

	// MaxRequestBodyBytes bounds request bodies
	MaxRequestBodyBytes int64 `yaml:"max_request_body_bytes" json:"max_request_body_bytes"`

	ReadTimeoutSeconds     int `yaml:"read_timeout_seconds" json:"read_timeout_seconds"`
	WriteTimeoutSeconds    int `yaml:"write_timeout_seconds" json:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`

	// AuditEnabled turns audit messages on
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors Config with pointers so that values explicitly set to
// their zero value in the file are still recognised.
type fileConfig struct {
	BindAddress            *string `yaml:"bind_address"`
	Port                   *int    `yaml:"port"`
	DatabaseURL            *string `yaml:"database_url"`
	LogLevel               *string `yaml:"log_level"`
	LogFormat              *string `yaml:"log_format"`
	DebugRoutes            *bool   `yaml:"debug_routes"`
	MaxRequestBodyBytes    *int64  `yaml:"max_request_body_bytes"`
	ReadTimeoutSeconds     *int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    *int    `yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds *int    `yaml:"shutdown_timeout_seconds"`
	AuditEnabled           *bool   `yaml:"audit_enabled"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			logging.Default().Warn().Err(err).Msg("using default configuration")
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
	set(cfg)
	return nil
}

func set(cfg *Config) {
	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
}

func newDefault() *Config {
	cfg := &Config{
		BindAddress:            "0.0.0.0",
		Port:                   8080,
		LogLevel:               "info",
		LogFormat:              "auto",
		DebugRoutes:            false,
		MaxRequestBodyBytes:    1 << 20,
		ReadTimeoutSeconds:     15,
		WriteTimeoutSeconds:    15,
		ShutdownTimeoutSeconds: 10,
		AuditEnabled:           true,
		sources:                make(map[string]string),
	}
	for _, name := range attributeNames() {
		cfg.sources[name] = "default"
	}
	return cfg
}

// Path returns the config file location derived from SWAPI_CONFIG_PATH
func Path() string {
	configPath := os.Getenv("SWAPI_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return filepath.Join(configPath, ConfigFileName)
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load with an explicit config file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	config := newDefault()
	config.configFilePath = path

	if data, err := os.ReadFile(path); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()
	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "database_url", "log_level", "log_format",
		"debug_routes", "max_request_body_bytes", "read_timeout_seconds",
		"write_timeout_seconds", "shutdown_timeout_seconds", "audit_enabled",
	}
}

func (c *Config) applyFileConfig(file *fileConfig) {
	if file.BindAddress != nil {
		c.BindAddress = *file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != nil {
		c.Port = *file.Port
		c.sources["port"] = "file"
	}
	if file.DatabaseURL != nil {
		c.DatabaseURL = *file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.LogFormat != nil {
		c.LogFormat = *file.LogFormat
		c.sources["log_format"] = "file"
	}
	if file.DebugRoutes != nil {
		c.DebugRoutes = *file.DebugRoutes
		c.sources["debug_routes"] = "file"
	}
	if file.MaxRequestBodyBytes != nil {
		c.MaxRequestBodyBytes = *file.MaxRequestBodyBytes
		c.sources["max_request_body_bytes"] = "file"
	}
	if file.ReadTimeoutSeconds != nil {
		c.ReadTimeoutSeconds = *file.ReadTimeoutSeconds
		c.sources["read_timeout_seconds"] = "file"
	}
	if file.WriteTimeoutSeconds != nil {
		c.WriteTimeoutSeconds = *file.WriteTimeoutSeconds
		c.sources["write_timeout_seconds"] = "file"
	}
	if file.ShutdownTimeoutSeconds != nil {
		c.ShutdownTimeoutSeconds = *file.ShutdownTimeoutSeconds
		c.sources["shutdown_timeout_seconds"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	c.envInt("PORT", "port", &c.Port)
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("SWAPI_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("SWAPI_LOG_FORMAT"); val != "" {
		c.LogFormat = val
		c.sources["log_format"] = "environment"
	}
	if val := os.Getenv("SWAPI_DEBUG_ROUTES"); val != "" {
		c.DebugRoutes = val == "true" || val == "1"
		c.sources["debug_routes"] = "environment"
	}
	if val := os.Getenv("SWAPI_MAX_REQUEST_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxRequestBodyBytes = i
			c.sources["max_request_body_bytes"] = "environment"
		}
	}
	c.envInt("SWAPI_READ_TIMEOUT_SECONDS", "read_timeout_seconds", &c.ReadTimeoutSeconds)
	c.envInt("SWAPI_WRITE_TIMEOUT_SECONDS", "write_timeout_seconds", &c.WriteTimeoutSeconds)
	c.envInt("SWAPI_SHUTDOWN_TIMEOUT_SECONDS", "shutdown_timeout_seconds", &c.ShutdownTimeoutSeconds)
	if val := os.Getenv("SWAPI_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = !(val == "false" || val == "0")
		c.sources["audit_enabled"] = "environment"
	}
}

func (c *Config) envInt(env, name string, dst *int) {
	val := os.Getenv(env)
	if val == "" {
		return
	}
	if i, err := strconv.Atoi(val); err == nil {
		*dst = i
		c.sources[name] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// ListenAddress joins bind_address and port
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// ReadTimeout returns read_timeout_seconds as a duration
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns write_timeout_seconds as a duration
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns shutdown_timeout_seconds as a duration
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// LoggingConfig derives the server logger settings
func (c *Config) LoggingConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Format = c.LogFormat
	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.BindAddress != "" && c.BindAddress != "localhost" && net.ParseIP(c.BindAddress) == nil {
		return fmt.Errorf("invalid bind_address value: %s", c.BindAddress)
	}
	if c.MaxRequestBodyBytes <= 0 {
		return fmt.Errorf("max_request_body_bytes must be positive, got %d", c.MaxRequestBodyBytes)
	}
	for name, v := range map[string]int{
		"read_timeout_seconds":     c.ReadTimeoutSeconds,
		"write_timeout_seconds":    c.WriteTimeoutSeconds,
		"shutdown_timeout_seconds": c.ShutdownTimeoutSeconds,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}

	format := strings.ToLower(c.LogFormat)
	valid := false
	for _, f := range ValidLogFormats {
		if format == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
		{Name: "debug_routes", Value: strconv.FormatBool(c.DebugRoutes), Source: c.Source("debug_routes")},
		{Name: "max_request_body_bytes", Value: strconv.FormatInt(c.MaxRequestBodyBytes, 10), Source: c.Source("max_request_body_bytes")},
		{Name: "read_timeout_seconds", Value: strconv.Itoa(c.ReadTimeoutSeconds), Source: c.Source("read_timeout_seconds")},
		{Name: "write_timeout_seconds", Value: strconv.Itoa(c.WriteTimeoutSeconds), Source: c.Source("write_timeout_seconds")},
		{Name: "shutdown_timeout_seconds", Value: strconv.Itoa(c.ShutdownTimeoutSeconds), Source: c.Source("shutdown_timeout_seconds")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
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

// redactURL hides the password of a connection URL
func redactURL(raw string) string {
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return raw
	}
	creds := raw[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return raw[:scheme+3] + creds[:colon] + ":xxxxx" + raw[at:]
	}
	return raw
}
