package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	App      AppConfig      `json:"app" yaml:"app"`
	API      APIConfig      `json:"api" yaml:"api"`
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
	Yandex   YandexConfig   `json:"yandex" yaml:"yandex"`
	Session  SessionConfig  `json:"session" yaml:"session"`
	Catalog  CatalogConfig  `json:"catalog" yaml:"catalog"`
	Leads    LeadsConfig    `json:"leads" yaml:"leads"`
}

// AppConfig represents application configuration
type AppConfig struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Debug       bool   `json:"debug"`
	LogDir      string `json:"log_dir"`
	Environment string `json:"environment"`
}

// APIConfig represents HTTP API configuration
type APIConfig struct {
	Enabled     bool     `json:"enabled"`
	Host        string   `json:"host"`
	Port        int      `json:"port"`
	CORSOrigins []string `json:"cors_origins"`
}

// TelegramConfig represents Telegram transport configuration
type TelegramConfig struct {
	Enabled     bool   `json:"enabled"`
	Token       string `json:"token"`
	PollTimeout int    `json:"poll_timeout"`
	LogoPath    string `json:"logo_path"`
}

// YandexConfig represents the YandexGPT completion service configuration
type YandexConfig struct {
	APIKey      string  `json:"api_key"`
	FolderID    string  `json:"folder_id"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Timeout     int     `json:"timeout"`
}

// SessionConfig represents session store configuration
type SessionConfig struct {
	StoreType     string `json:"store_type"` // "memory" or "redis"
	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`
	TTLHours      int    `json:"ttl_hours"`
}

// CatalogConfig represents the development catalog source
type CatalogConfig struct {
	Path string `json:"path"`
}

// LeadsConfig represents lead persistence configuration
type LeadsConfig struct {
	StoreType   string `json:"store_type"` // "file", "memory" or "supabase"
	FilePath    string `json:"file_path"`
	SupabaseURL string `json:"supabase_url"`
	SupabaseKey string `json:"supabase_key"`
	Table       string `json:"table"`
}

// Load loads configuration from YAML files and environment variables
func Load() *Config {
	config := &Config{}

	configDir := getEnv("CONFIG_DIR", "config")
	yamlConfig := loadYAMLConfig(configDir)

	config.App = AppConfig{
		Name:        getEnvWithYAML("APP_NAME", yamlConfig, "app.name", "RealEstateManagerBot"),
		Version:     getEnvWithYAML("APP_VERSION", yamlConfig, "app.version", "1.0.0"),
		Debug:       getEnvBoolWithYAML("DEBUG", yamlConfig, "app.debug", false),
		LogDir:      getEnvWithYAML("LOG_DIR", yamlConfig, "app.log_dir", "logs"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	config.API = APIConfig{
		Enabled:     getEnvBoolWithYAML("API_ENABLED", yamlConfig, "api.enabled", true),
		Host:        getEnvWithYAML("API_HOST", yamlConfig, "api.host", "0.0.0.0"),
		Port:        getEnvIntWithYAML("API_PORT", yamlConfig, "api.port", 8080),
		CORSOrigins: getEnvSliceWithYAML("API_CORS_ORIGINS", yamlConfig, "api.cors_origins", []string{"*"}),
	}

	config.Telegram = TelegramConfig{
		Enabled:     getEnvBoolWithYAML("TELEGRAM_ENABLED", yamlConfig, "telegram.enabled", true),
		Token:       getEnvWithYAML("TELEGRAM_TOKEN", yamlConfig, "telegram.token", ""),
		PollTimeout: getEnvIntWithYAML("TELEGRAM_POLL_TIMEOUT", yamlConfig, "telegram.poll_timeout", 60),
		LogoPath:    getEnvWithYAML("TELEGRAM_LOGO_PATH", yamlConfig, "telegram.logo_path", "images/logo.jpg"),
	}

	config.Yandex = YandexConfig{
		APIKey:      getEnvWithYAML("YANDEX_API_KEY", yamlConfig, "yandex.api_key", ""),
		FolderID:    getEnvWithYAML("YANDEX_FOLDER_ID", yamlConfig, "yandex.folder_id", ""),
		Model:       getEnvWithYAML("YANDEX_MODEL", yamlConfig, "yandex.model", "yandexgpt-lite"),
		Temperature: getEnvFloat64WithYAML("YANDEX_TEMPERATURE", yamlConfig, "yandex.temperature", 0.6),
		MaxTokens:   getEnvIntWithYAML("YANDEX_MAX_TOKENS", yamlConfig, "yandex.max_tokens", 1500),
		Timeout:     getEnvIntWithYAML("YANDEX_TIMEOUT", yamlConfig, "yandex.timeout", 15),
	}

	config.Session = SessionConfig{
		StoreType:     getEnvWithYAML("SESSION_STORE_TYPE", yamlConfig, "session.store_type", "memory"),
		RedisHost:     getEnvWithYAML("REDIS_HOST", yamlConfig, "session.redis_host", "localhost"),
		RedisPort:     getEnvIntWithYAML("REDIS_PORT", yamlConfig, "session.redis_port", 6379),
		RedisPassword: getEnvWithYAML("REDIS_PASSWORD", yamlConfig, "session.redis_password", ""),
		RedisDB:       getEnvIntWithYAML("REDIS_DB", yamlConfig, "session.redis_db", 0),
		TTLHours:      getEnvIntWithYAML("SESSION_TTL_HOURS", yamlConfig, "session.ttl_hours", 24),
	}

	config.Catalog = CatalogConfig{
		Path: getEnvWithYAML("CATALOG_PATH", yamlConfig, "catalog.path", "data/catalog.json"),
	}

	config.Leads = LeadsConfig{
		StoreType:   getEnvWithYAML("LEADS_STORE_TYPE", yamlConfig, "leads.store_type", "file"),
		FilePath:    getEnvWithYAML("LEADS_FILE_PATH", yamlConfig, "leads.file_path", "data/contacts.json"),
		SupabaseURL: getEnvWithYAML("SUPABASE_URL", yamlConfig, "leads.supabase_url", ""),
		SupabaseKey: getEnvWithYAML("SUPABASE_KEY", yamlConfig, "leads.supabase_key", ""),
		Table:       getEnvWithYAML("LEADS_TABLE", yamlConfig, "leads.table", "leads"),
	}

	return config
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadYAMLConfig loads configuration from YAML files
func loadYAMLConfig(configDir string) map[string]interface{} {
	yamlConfig := make(map[string]interface{})

	appConfigPath := filepath.Join(configDir, "app_config.yaml")
	if data, err := os.ReadFile(appConfigPath); err == nil {
		var config map[string]interface{}
		if err := yaml.Unmarshal(data, &config); err == nil {
			yamlConfig = config
		}
	}

	return yamlConfig
}

// getEnvWithYAML gets environment variable with YAML fallback
func getEnvWithYAML(envKey string, yamlConfig map[string]interface{}, yamlPath, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}

	if yamlValue := getYAMLValue(yamlConfig, yamlPath); yamlValue != "" {
		return yamlValue
	}

	return defaultValue
}

// getEnvIntWithYAML gets integer environment variable with YAML fallback
func getEnvIntWithYAML(envKey string, yamlConfig map[string]interface{}, yamlPath string, defaultValue int) int {
	if value := os.Getenv(envKey); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	if yamlValue := getYAMLValue(yamlConfig, yamlPath); yamlValue != "" {
		if intValue, err := strconv.Atoi(yamlValue); err == nil {
			return intValue
		}
	}

	return defaultValue
}

// getEnvFloat64WithYAML gets float64 environment variable with YAML fallback
func getEnvFloat64WithYAML(envKey string, yamlConfig map[string]interface{}, yamlPath string, defaultValue float64) float64 {
	if value := os.Getenv(envKey); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}

	if yamlValue := getYAMLValue(yamlConfig, yamlPath); yamlValue != "" {
		if floatValue, err := strconv.ParseFloat(yamlValue, 64); err == nil {
			return floatValue
		}
	}

	return defaultValue
}

// getEnvBoolWithYAML gets boolean environment variable with YAML fallback
func getEnvBoolWithYAML(envKey string, yamlConfig map[string]interface{}, yamlPath string, defaultValue bool) bool {
	if value := os.Getenv(envKey); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}

	if yamlValue := getYAMLValue(yamlConfig, yamlPath); yamlValue != "" {
		if boolValue, err := strconv.ParseBool(yamlValue); err == nil {
			return boolValue
		}
	}

	return defaultValue
}

// getEnvSliceWithYAML gets string slice environment variable with YAML fallback
func getEnvSliceWithYAML(envKey string, yamlConfig map[string]interface{}, yamlPath string, defaultValue []string) []string {
	if value := os.Getenv(envKey); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, len(parts))
		for i, part := range parts {
			result[i] = strings.TrimSpace(part)
		}
		return result
	}

	if yamlValue := getYAMLSlice(yamlConfig, yamlPath); yamlValue != nil {
		return yamlValue
	}

	return defaultValue
}

// getYAMLValue gets value from YAML config using dot notation path
func getYAMLValue(config map[string]interface{}, path string) string {
	parts := strings.Split(path, ".")
	current := config

	for i, part := range parts {
		if i == len(parts)-1 {
			if value, ok := current[part]; ok {
				switch v := value.(type) {
				case string:
					return v
				case int:
					return strconv.Itoa(v)
				case bool:
					return strconv.FormatBool(v)
				case float64:
					return strconv.FormatFloat(v, 'f', -1, 64)
				}
			}
			break
		}

		if next, ok := current[part].(map[string]interface{}); ok {
			current = next
		} else {
			break
		}
	}

	return ""
}

// getYAMLSlice gets string slice from YAML config using dot notation path
func getYAMLSlice(config map[string]interface{}, path string) []string {
	parts := strings.Split(path, ".")
	current := config

	for i, part := range parts {
		if i == len(parts)-1 {
			if value, ok := current[part]; ok {
				if slice, ok := value.([]interface{}); ok {
					result := make([]string, 0, len(slice))
					for _, item := range slice {
						if str, ok := item.(string); ok {
							result = append(result, str)
						}
					}
					return result
				}
			}
			break
		}

		if next, ok := current[part].(map[string]interface{}); ok {
			current = next
		} else {
			break
		}
	}

	return nil
}
