package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

type Config struct {
	HTTP        HTTPConfig
	Log         LogConfig
	StorageType string
	// ShutdownTimeout bounds how long in-flight requests get after a stop signal.
	ShutdownTimeout time.Duration
}

type HTTPConfig struct {
	Host string
	Port int
}

func (hc HTTPConfig) Addr() string {
	return net.JoinHostPort(hc.Host, strconv.Itoa(hc.Port))
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig reads the environment, after loading .env from the working
// directory when one exists. Unset variables take their defaults.
func LoadConfig() (Config, error) {
	return loadConfig(".env")
}

func loadConfig(envFile string) (Config, error) {
	// Variables already in the environment win over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	port, err := getInt("HTTP_PORT", 8000)
	if err != nil {
		return Config{}, err
	}
	if port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("HTTP_PORT out of range: %d", port)
	}

	shutdown, err := getInt("SHUTDOWN_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	if shutdown < 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must not be negative: %d", shutdown)
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Host: os.Getenv("HTTP_HOST"),
			Port: port,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		StorageType:     getEnv("STORAGE_TYPE", StorageMemory),
		ShutdownTimeout: time.Duration(shutdown) * time.Second,
	}

	switch cfg.StorageType {
	case StorageMemory, StorageBadger:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int for env var %s: %s", key, val)
	}
	return i, nil
}
