package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetFloat parses key as a float64, falling back on absence or parse failure.
func GetFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetDuration parses key with time.ParseDuration, falling back on absence or parse failure.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// GetList splits a comma-separated value, dropping blanks.
func GetList(key string) []string {
	parts := strings.Split(os.Getenv(key), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Server is the process configuration for cmd/server.
type Server struct {
	Port         string
	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
	TablesPath   string
	CacheTTL     time.Duration
	RateLimit    float64
	RateBurst    int
	CORSOrigins  []string
	MockPanels   int
	MockSeed     uint64
}

// LoadServer reads the server configuration from the environment.
func LoadServer() Server {
	burst, err := strconv.Atoi(Get("RATE_BURST", "20"))
	if err != nil || burst < 1 {
		burst = 20
	}
	panels, err := strconv.Atoi(Get("MOCK_PANELS", "300"))
	if err != nil || panels < 0 {
		panels = 300
	}
	seed, err := strconv.ParseUint(Get("MOCK_SEED", "42"), 10, 64)
	if err != nil {
		seed = 42
	}

	origins := GetList("CORS_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return Server{
		Port:         Get("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: GetList("KAFKA_BROKERS"),
		KafkaTopic:   Get("KAFKA_TOPIC", "cleaning-route-planned"),
		TablesPath:   os.Getenv("MODEL_TABLES_PATH"),
		CacheTTL:     GetDuration("PLAN_CACHE_TTL", 10*time.Minute),
		RateLimit:    GetFloat("RATE_LIMIT_RPS", 10),
		RateBurst:    burst,
		CORSOrigins:  origins,
		MockPanels:   panels,
		MockSeed:     seed,
	}
}
