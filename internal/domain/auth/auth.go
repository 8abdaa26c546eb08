// Package auth simulates identity providers for the single-user client.
// Social logins resolve to fixed mock identities; email accounts are held
// in memory with bcrypt-hashed credentials. A configurable latency models
// the round trip to a real provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"partyconnect/pkg/metrics"
)

// Sentinel errors for login flows.
var (
	ErrUnknownProvider    = errors.New("unknown provider")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Default simulated provider latency bounds.
const (
	defaultMinLatency = 250 * time.Millisecond
	defaultMaxLatency = 750 * time.Millisecond
)

// Identity is the public identity returned by a successful login.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Provider string `json:"provider"`
}

type credential struct {
	name string
	hash []byte
}

// Authenticator implements the simulated login flows.
type Authenticator struct {
	mu        sync.Mutex
	providers map[string]Identity
	accounts  map[string]credential // keyed by normalized email

	minLatency time.Duration
	maxLatency time.Duration
	rng        *rand.Rand

	secret   []byte
	tokenTTL time.Duration
}

// New creates an Authenticator preloaded with the demo social providers.
func New(opts ...Option) *Authenticator {
	a := &Authenticator{
		providers:  defaultProviders(),
		accounts:   make(map[string]credential),
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // latency jitter only
		secret:     []byte("partyconnect-dev-secret"),
		tokenTTL:   24 * time.Hour,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoginWithProvider returns the mock identity for a social provider.
func (a *Authenticator) LoginWithProvider(ctx context.Context, provider string) (Identity, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return Identity{}, err
	}

	a.mu.Lock()
	id, ok := a.providers[strings.ToLower(strings.TrimSpace(provider))]
	a.mu.Unlock()
	if !ok {
		metrics.RecordAuthLogin(provider, "unknown_provider")
		return Identity{}, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	metrics.RecordAuthLogin(id.Provider, "ok")
	return id, nil
}

// SignupWithEmail registers an email account and returns its identity.
// The avatar is derived deterministically from the email so repeated
// signups in a fresh session look the same.
func (a *Authenticator) SignupWithEmail(ctx context.Context, name, email, password string) (Identity, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return Identity{}, err
	}

	key := normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.accounts[key]; exists {
		metrics.RecordAuthLogin("email", "email_taken")
		return Identity{}, ErrEmailTaken
	}
	if name == "" {
		name = displayNameFor(key)
	}
	a.accounts[key] = credential{name: name, hash: hash}

	metrics.RecordAuthLogin("email", "ok")
	return a.emailIdentity(key, name), nil
}

// LoginWithEmail verifies a previously registered email account. Unlike
// the browser mock, which accepted any email, unknown accounts and wrong
// passwords fail with ErrInvalidCredentials.
func (a *Authenticator) LoginWithEmail(ctx context.Context, email, password string) (Identity, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return Identity{}, err
	}

	key := normalizeEmail(email)
	a.mu.Lock()
	cred, ok := a.accounts[key]
	a.mu.Unlock()
	if !ok {
		metrics.RecordAuthLogin("email", "invalid")
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		metrics.RecordAuthLogin("email", "invalid")
		return Identity{}, ErrInvalidCredentials
	}

	metrics.RecordAuthLogin("email", "ok")
	return a.emailIdentity(key, cred.name), nil
}

func (a *Authenticator) emailIdentity(email, name string) Identity {
	return Identity{
		ID:       "email-user-" + email,
		Name:     name,
		Email:    email,
		Avatar:   avatarFor(email),
		Provider: "Email",
	}
}

// simulateLatency sleeps a random duration in the configured range,
// honoring ctx cancellation. A zero range disables the delay.
func (a *Authenticator) simulateLatency(ctx context.Context) error {
	if a.maxLatency <= 0 {
		return nil
	}
	d := a.minLatency
	if span := a.maxLatency - a.minLatency; span > 0 {
		a.mu.Lock()
		d += time.Duration(a.rng.Int63n(int64(span)))
		a.mu.Unlock()
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("login cancelled: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// avatarFor picks a stable stock portrait URL from the email bytes.
func avatarFor(email string) string {
	sum := 0
	for _, ch := range email {
		sum += int(ch)
	}
	idx := sum % 100
	gender := "women"
	if idx%2 == 0 {
		gender = "men"
	}
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, idx)
}

// displayNameFor turns the local part of an email into a title-cased name.
func displayNameFor(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	fields := strings.FieldsFunc(local, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}

// defaultProviders mirrors the demo identities the application ships with.
func defaultProviders() map[string]Identity {
	return map[string]Identity{
		"google": {
			ID:       "google-user-123",
			Name:     "Alex Johnson",
			Email:    "alex.johnson@gmail.com",
			Avatar:   "https://randomuser.me/api/portraits/men/32.jpg",
			Provider: "Google",
		},
		"facebook": {
			ID:       "facebook-user-456",
			Name:     "Emma Davis",
			Email:    "emma.davis@facebook.com",
			Avatar:   "https://randomuser.me/api/portraits/women/44.jpg",
			Provider: "Facebook",
		},
		"github": {
			ID:       "github-user-789",
			Name:     "Sam Wilson",
			Email:    "sam.wilson@github.com",
			Avatar:   "https://randomuser.me/api/portraits/men/67.jpg",
			Provider: "GitHub",
		},
	}
}
