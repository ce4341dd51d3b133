package config

import (
	"os"
	"strconv"
	"time"
)

const envPrefix = "RULERUSH_"

// FromEnv applies RULERUSH_* environment overrides to cfg.
// Unset or malformed variables leave the current value.
func FromEnv(cfg Config) Config {
	if val := os.Getenv(envPrefix + "ADDR"); val != "" {
		cfg.Server.Addr = val
	}
	if val := os.Getenv(envPrefix + "LOG_LEVEL"); val != "" {
		cfg.Server.LogLevel = val
	}
	if val := getEnvInt("MAX_SESSIONS"); val > 0 {
		cfg.Server.MaxSessions = val
	}
	if val := getEnvInt("SEED"); val > 0 {
		cfg.Server.Seed = uint64(val)
	}
	if val := getEnvInt("MAX_MISTAKES"); val > 0 {
		cfg.Game.MaxMistakes = val
	}
	if val := getEnvInt("MAX_OBJECTS"); val > 0 {
		cfg.Game.MaxObjects = val
	}
	if val := getEnvDuration("TICK_INTERVAL"); val > 0 {
		cfg.Game.TickInterval = val
	}
	if val := getEnvInt("GENERATION_RETRIES"); val >= 0 {
		cfg.Game.GenerationRetries = val
	}
	if val, ok := getEnvFloat("NEGATION_PROBABILITY"); ok {
		cfg.Rules.NegationProbability = val
	}
	if val := getEnvInt("VALID_ATTEMPTS"); val > 0 {
		cfg.Generator.ValidAttempts = val
	}
	if val := getEnvInt("DISTRACTOR_ATTEMPTS"); val > 0 {
		cfg.Generator.DistractorAttempts = val
	}
	return cfg
}

// getEnvInt returns -1 when the variable is unset or not an integer.
func getEnvInt(key string) int {
	val := os.Getenv(envPrefix + key)
	if val == "" {
		return -1
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return -1
	}
	return n
}

func getEnvFloat(key string) (float64, bool) {
	val := os.Getenv(envPrefix + key)
	if val == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func getEnvDuration(key string) time.Duration {
	val := os.Getenv(envPrefix + key)
	if val == "" {
		return 0
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0
	}
	return d
}
