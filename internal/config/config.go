// Package config reads ambient, environment-backed settings shared by
// every trip-atlas subcommand: log verbosity and the pathfinder's
// bucket-queue tuning.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel zerolog.Level

	SecondsPerBucket uint32
	MaxSeconds       uint32

	BuildLogPath string
}

func Load() Config {
	return Config{
		LogLevel: getLogLevelEnv("LOG_LEVEL", zerolog.InfoLevel),

		SecondsPerBucket: getUint32Env("PATHFINDER_SECONDS_PER_BUCKET", 30),
		MaxSeconds:       getUint32Env("PATHFINDER_MAX_SECONDS", 3000*60),

		BuildLogPath: getEnv("BUILD_LOG_PATH", "trip-atlas-builds.db"),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getUint32Env(key string, defaultVal uint32) uint32 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint32(i)
		}
	}
	return defaultVal
}

func getLogLevelEnv(key string, defaultVal zerolog.Level) zerolog.Level {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return defaultVal
	}

	level, err := zerolog.ParseLevel(v)
	if err != nil {
		return defaultVal
	}
	return level
}
