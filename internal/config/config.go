package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aeroops/diversion-engine/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Airport database configuration.
	AirportsBaseURL   string
	AirportsToken     string
	AirportsEnabled   bool
	AirportsTimeout   time.Duration
	AirportsCacheSize int
	AirportsRadiusNm  float64

	// Policy overrides. Zero means "use the engine default".
	FuelFeasibilityCeiling float64
	ReserveMinutes         float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := parseDuration("BATCH_FLUSH_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	airportsTimeout, err := parseDuration("AIRPORTS_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	airportsRadius, err := parseFloat("AIRPORTS_RADIUS_NM", 250)
	if err != nil {
		return nil, err
	}

	fuelCeiling, err := parseFloat("FUEL_FEASIBILITY_CEILING", 0)
	if err != nil {
		return nil, err
	}
	if fuelCeiling < 0 || fuelCeiling > 1 {
		return nil, errors.New("FUEL_FEASIBILITY_CEILING must be within (0, 1]")
	}

	reserveMinutes, err := parseFloat("RESERVE_MINUTES", 0)
	if err != nil {
		return nil, err
	}

	airportsToken := os.Getenv("AIRPORTS_TOKEN")
	airportsEnabled := airportsToken != ""
	if v := os.Getenv("AIRPORTS_ENABLED"); v != "" {
		airportsEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "diversion-requests"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "diversion-briefs"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "diversion-engine"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		AirportsBaseURL:   envOrDefault("AIRPORTS_BASE_URL", "https://airportdb.aeroops.io"),
		AirportsToken:     airportsToken,
		AirportsEnabled:   airportsEnabled,
		AirportsTimeout:   airportsTimeout,
		AirportsCacheSize: parseAirportsCacheSize(),
		AirportsRadiusNm:  airportsRadius,

		FuelFeasibilityCeiling: fuelCeiling,
		ReserveMinutes:         reserveMinutes,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.AirportsRadiusNm <= 0 {
		return nil, errors.New("AIRPORTS_RADIUS_NM must be positive")
	}
	if cfg.AirportsEnabled && cfg.AirportsToken == "" {
		return nil, errors.New("AIRPORTS_ENABLED is true but AIRPORTS_TOKEN is not set")
	}

	return cfg, nil
}

// Policy builds the engine policy from the defaults plus any configured
// overrides, validating the result.
func (c *Config) Policy() (domain.Policy, error) {
	policy := domain.DefaultPolicy()
	if c.FuelFeasibilityCeiling > 0 {
		policy.FuelFeasibilityCeiling = c.FuelFeasibilityCeiling
	}
	if c.ReserveMinutes > 0 {
		policy.ReserveMinutes = c.ReserveMinutes
	}
	if err := policy.Validate(); err != nil {
		return domain.Policy{}, fmt.Errorf("config policy: %w", err)
	}
	return policy, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}

func parseBatchSize() (int, error) {
	s := os.Getenv("BATCH_SIZE")
	if s == "" {
		return 50, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 1000 {
		return 0, fmt.Errorf("invalid BATCH_SIZE: %q (must be 1-1000)", s)
	}
	return n, nil
}

func parseAirportsCacheSize() int {
	if s := os.Getenv("AIRPORTS_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
