package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from a .env file first
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Environment variables override config file values
	v.SetEnvPrefix("DJB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.publicBaseUrl", "http://localhost:8080")
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("djomy.environment", "test")
	v.SetDefault("djomy.httpTimeout", 15) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

// getEnvironment determines the environment based on the DJB_ENV variable
func getEnvironment() string {
	env := os.Getenv("DJB_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for sensitive settings
func processEnvOverrides(v *viper.Viper) {
	if dbHost := os.Getenv("DJB_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := os.Getenv("DJB_DB_PORT"); dbPort != "" {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("DJB_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("DJB_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("DJB_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("DJB_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}

	if redisAddr := os.Getenv("DJB_REDIS_ADDR"); redisAddr != "" {
		v.Set("redis.addr", redisAddr)
	}
	if redisPassword := os.Getenv("DJB_REDIS_PASSWORD"); redisPassword != "" {
		v.Set("redis.password", redisPassword)
	}

	// Provider credentials are expected from the environment in production
	if clientID := os.Getenv("DJB_DJOMY_CLIENT_ID"); clientID != "" {
		v.Set("djomy.clientId", clientID)
	}
	if clientSecret := os.Getenv("DJB_DJOMY_CLIENT_SECRET"); clientSecret != "" {
		v.Set("djomy.clientSecret", clientSecret)
	}
	if partnerDomain := os.Getenv("DJB_DJOMY_PARTNER_DOMAIN"); partnerDomain != "" {
		v.Set("djomy.partnerDomain", partnerDomain)
	}
	if djomyEnv := os.Getenv("DJB_DJOMY_ENVIRONMENT"); djomyEnv != "" {
		v.Set("djomy.environment", djomyEnv)
	}
	if djomyBaseURL := os.Getenv("DJB_DJOMY_BASE_URL"); djomyBaseURL != "" {
		v.Set("djomy.baseUrl", djomyBaseURL)
	}

	if baseURL := os.Getenv("DJB_SERVER_PUBLIC_BASE_URL"); baseURL != "" {
		v.Set("server.publicBaseUrl", baseURL)
	}
	if serverPort := os.Getenv("DJB_SERVER_PORT"); serverPort != "" {
		v.Set("server.port", serverPort)
	}
	if logLevel := os.Getenv("DJB_LOGGER_LEVEL"); logLevel != "" {
		v.Set("logger.level", logLevel)
	}
}

// processDurations converts duration fields from their raw values
func processDurations(config *Config) {
	// Seconds
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Djomy.HTTPTimeout = time.Duration(config.Djomy.HTTPTimeout) * time.Second

	// Minutes
	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
}
