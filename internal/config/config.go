package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	Environment string
	CORSOrigins string

	LogLevel     string
	LogBackend   string
	LogDirectory string
	Timezone     string

	MaxUploadSizeMB   int
	AnalysisTimeout   time.Duration
	MovementThreshold float64
	MinContourArea    int

	// StorageBackend is one of memory, postgres or mongo.
	StorageBackend string

	DBName     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	MongoURI      string
	MongoDatabase string

	MQTTURI      string
	MQTTUsername string
	MQTTPassword string
	MQTTTopic    string
}

func (c *Config) dsnURL() *url.URL {
	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
}

func (c *Config) DSN() string {
	return c.dsnURL().String()
}

// DSNForLog is DSN with the password masked.
func (c *Config) DSNForLog() string {
	return c.dsnURL().Redacted()
}

func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

func (c *Config) MaxUploadSize() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) Validate() error {
	if c.MovementThreshold <= 0 {
		return errors.New("MOVEMENT_THRESHOLD must be positive")
	}
	if c.MinContourArea <= 0 {
		return errors.New("MIN_CONTOUR_AREA must be positive")
	}
	if c.AnalysisTimeout <= 0 {
		return errors.New("ANALYSIS_TIMEOUT must be positive")
	}
	switch c.LogBackend {
	case "logrus", "go-logging":
	default:
		return fmt.Errorf("unknown LOG_BACKEND %q", c.LogBackend)
	}
	switch c.StorageBackend {
	case "memory", "postgres", "mongo":
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

func LoadConfig() *Config {
	// A missing .env file is fine, the process environment is used instead.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8000"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogBackend:        getEnv("LOG_BACKEND", "logrus"),
		LogDirectory:      getEnv("LOG_DIRECTORY", ""),
		Timezone:          getEnv("TIMEZONE", "UTC"),
		MaxUploadSizeMB:   getEnvInt("MAX_UPLOAD_SIZE_MB", 200),
		AnalysisTimeout:   getEnvDuration("ANALYSIS_TIMEOUT", 5*time.Minute),
		MovementThreshold: getEnvFloat("MOVEMENT_THRESHOLD", 1000.0),
		MinContourArea:    getEnvInt("MIN_CONTOUR_AREA", 500),
		StorageBackend:    getEnv("STORAGE_BACKEND", "memory"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "motion_analyzer"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGODB_DATABASE", "motion_analyzer"),
		MQTTURI:           getEnv("MQTT_URI", ""),
		MQTTUsername:      getEnv("MQTT_USERNAME", ""),
		MQTTPassword:      getEnv("MQTT_PASSWORD", ""),
		MQTTTopic:         getEnv("MQTT_TOPIC", "motion-analyzer"),
	}

	if cfg.StorageBackend == "postgres" && cfg.DBPassword == "" {
		log.Println("WARNING: DB_PASSWORD is not set!")
	}

	return cfg
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if floatVal, err := strconv.ParseFloat(v, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
