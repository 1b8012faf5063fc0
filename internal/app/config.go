package app

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Env       string
	HTTPAddr  string
	CORSAllow []string

	RedisAddr string // host:port; empty = in-memory store/bus (dev only)
	RedisDB   int

	RoomTTL      time.Duration // initial lifetime of a new room
	RoomCapacity int           // max connected tokens per room
	OpTimeout    time.Duration // per store/bus call deadline

	RateMax    int
	RateWindow time.Duration
}

func LoadConfig() Config {
	cfg := Config{
		Env:      getEnv("APP_ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}
	// An explicitly empty REDIS_ADDR opts into the in-process store/bus, so
	// unset and empty must stay distinguishable here.
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	} else {
		cfg.RedisAddr = "localhost:6379"
	}
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.RoomTTL = getEnvDuration("ROOM_TTL", time.Hour)
	cfg.RoomCapacity = getEnvInt("ROOM_CAPACITY", 2)
	cfg.OpTimeout = getEnvDuration("OP_TIMEOUT", 3*time.Second)
	cfg.RateMax = getEnvInt("RATE_MAX", 60)
	cfg.RateWindow = getEnvDuration("RATE_WINDOW", time.Minute)
	// CORS allowlist
	allow := getEnv("CORS_ALLOW", "http://localhost:3000")
	cfg.CORSAllow = splitCSV(allow)
	return cfg
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses an int env var with a fallback
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		var i int
		_, _ = fmt.Sscanf(v, "%d", &i)
		if i > 0 {
			return i
		}
	}
	return def
}

// getEnvDuration parses a duration env var ("30m", "5s") with a fallback
func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

// splitCSV trims and filters a comma-separated list
func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
