package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Runtime struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	CacheMaxItems int
	ObsBuffer     int

	ValidateLatency    time.Duration
	SimulateLatency    time.Duration
	AutomationsLatency time.Duration

	RejectDanglingEdges  bool
	RejectUnknownActions bool
	RulesFile            string
}

// Load reads the runtime settings from the environment. A .env file in the
// working directory, if present, is applied first without overriding
// variables that are already set.
func Load() Runtime {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Runtime {
	return Runtime{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		LogLevel:             strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(getenv("LOG_FORMAT", "text")),
		CacheMaxItems:        getenvInt("VALIDATION_CACHE_MAX_ITEMS", 1024, 0),
		ObsBuffer:            getenvInt("SIM_OBS_BUFFER", 4096, 1),
		ValidateLatency:      getenvDuration("VALIDATE_LATENCY", 0),
		SimulateLatency:      getenvDuration("SIMULATE_LATENCY", 0),
		AutomationsLatency:   getenvDuration("AUTOMATIONS_LATENCY", 0),
		RejectDanglingEdges:  getenvBool("WORKFLOW_REJECT_DANGLING_EDGES", false),
		RejectUnknownActions: getenvBool("WORKFLOW_REJECT_UNKNOWN_ACTIONS", false),
		RulesFile:            getenv("WORKFLOW_RULES_FILE", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback, min int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return fallback
	}
	return v
}

// getenvDuration accepts Go durations ("200ms") or a bare integer of milliseconds.
func getenvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(raw); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getenvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
