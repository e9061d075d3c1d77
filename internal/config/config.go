package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Fairness   Fairness
	MySQLDSN   string
}

type HTTPServer struct {
	Address     string
	Timeout     time.Duration
	IdleTimeout time.Duration
}

type Fairness struct {
	// DefaultClientSeed is used when a round is opened without one.
	DefaultClientSeed string
	// RoundRetention is how long a round stays readable in the live store
	// after its last write; revealed history lives in the archive.
	RoundRetention time.Duration
	SweepInterval  time.Duration
}

// MustLoad reads .env (if present) and the environment. Exits on malformed
// values rather than starting with a half-applied config.
func MustLoad() *Config {
	_ = godotenv.Load()

	return &Config{
		Env: getEnv("APP_ENV", "local"),
		HTTPServer: HTTPServer{
			Address:     getEnv("HTTP_ADDRESS", "localhost:8080"),
			Timeout:     getDuration("HTTP_TIMEOUT", 4*time.Second),
			IdleTimeout: getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Fairness: Fairness{
			DefaultClientSeed: getEnv("DEFAULT_CLIENT_SEED", "cryptochecker"),
			RoundRetention:    getDuration("ROUND_RETENTION", 30*time.Minute),
			SweepInterval:     getDuration("ROUND_SWEEP_INTERVAL", 10*time.Minute),
		},
		// empty by default so the local env runs without a database;
		// set MYSQL_DSN to enable the durable round archive
		MySQLDSN: getEnv("MYSQL_DSN", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("config: cannot parse %s: %v", key, err)
	}

	return parsed
}
