package auth

import "time"

// Option applies a configuration option to the Authenticator.
type Option func(*Authenticator)

// WithLatencyRange sets the simulated provider latency bounds. A zero or
// negative max disables the delay (useful in tests).
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(a *Authenticator) {
		a.minLatency = minLatency
		a.maxLatency = maxLatency
	}
}

// WithSigningSecret sets the JWT signing secret.
func WithSigningSecret(secret string) Option {
	return func(a *Authenticator) {
		if secret != "" {
			a.secret = []byte(secret)
		}
	}
}

// WithTokenTTL sets the session token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(a *Authenticator) {
		if ttl > 0 {
			a.tokenTTL = ttl
		}
	}
}

// WithProvider adds or overrides a mock social provider identity.
func WithProvider(name string, id Identity) Option {
	return func(a *Authenticator) {
		if name != "" {
			a.providers[name] = id
		}
	}
}
