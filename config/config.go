// Package config reads the application settings from the environment.
package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

type SessionStore string

const (
	SessionStoreCookie SessionStore = "cookie"
	SessionStoreRedis  SessionStore = "redis"
)

const (
	defaultPort          = 5000
	defaultSecret        = "hard to guess string"
	defaultCheckpointJob = "@every 10m"
)

// LoadEnv loads variables from the given .env files (".env" when none is
// given) without overriding values already present in the environment.
// Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("DISC_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("DISC_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("DISC_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return filepath.Join(GetDBFolderPath(), "data.sqlite")
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("DISC_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("DISC_LISTEN")
}

// GetPort returns the web port, falling back to 5000 when unset or invalid.
// Port 0 picks a free port.
func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("DISC_PORT"))
	if err != nil || port < 0 || port > 65535 {
		return defaultPort
	}
	return port
}

// GetSecret returns the key used to sign session cookies.
func GetSecret() string {
	secret := os.Getenv("DISC_SECRET_KEY")
	if secret == "" {
		return defaultSecret
	}
	return secret
}

func GetSessionStore() SessionStore {
	switch SessionStore(strings.ToLower(os.Getenv("DISC_SESSION_STORE"))) {
	case SessionStoreRedis:
		return SessionStoreRedis
	default:
		return SessionStoreCookie
	}
}

// GetRedisAddr returns the external Redis address. An empty value means the
// embedded Redis is used when the redis session store is selected.
func GetRedisAddr() string {
	return os.Getenv("DISC_REDIS_ADDR")
}

func GetCheckpointCron() string {
	spec := os.Getenv("DISC_CHECKPOINT_CRON")
	if spec == "" {
		return defaultCheckpointJob
	}
	return spec
}
