// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer overrides from an optional YAML file and PARTY_-prefixed env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is where the stores persist their JSON documents.
	DataDir string `koanf:"data_dir"`

	// MaxNearbyKm caps GET /events/nearby?max_km.
	MaxNearbyKm float64 `koanf:"max_nearby_km"`

	// DefaultNearbyKm is the nearby radius when the client sends none.
	DefaultNearbyKm float64 `koanf:"default_nearby_km"`

	// AuthLatencyMinMS and AuthLatencyMaxMS bound the simulated provider
	// round trip. Zero max disables the delay.
	AuthLatencyMinMS int `koanf:"auth_latency_min_ms"`
	AuthLatencyMaxMS int `koanf:"auth_latency_max_ms"`

	// TokenSecret signs session tokens. The default is for development.
	TokenSecret string `koanf:"token_secret"`

	// TokenTTLMin is the session token lifetime in minutes.
	TokenTTLMin int `koanf:"token_ttl_min"`

	// SeedEvents loads the sample event catalog into an empty store.
	SeedEvents bool `koanf:"seed_events"`
}

// New creates a Config with development defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		DataDir:          "./data",
		MaxNearbyKm:      500,
		DefaultNearbyKm:  10,
		AuthLatencyMinMS: 250,
		AuthLatencyMaxMS: 750,
		TokenSecret:      "partyconnect-dev-secret",
		TokenTTLMin:      24 * 60,
		SeedEvents:       true,
	}
}
