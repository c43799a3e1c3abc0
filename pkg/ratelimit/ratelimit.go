package ratelimit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Config defines the login attempt budget for a single source identifier.
type Config struct {
	MaxAttempts int           `env:"RATE_LIMIT_MAX_ATTEMPTS" envDefault:"5"` // Attempts allowed within Window before lockout
	Window      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"5m"`      // Counting window for attempts
	Lockout     time.Duration `env:"RATE_LIMIT_LOCKOUT" envDefault:"15m"`    // Deny period once MaxAttempts is exceeded
}

func (c Config) validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	if c.Lockout <= 0 {
		return fmt.Errorf("%w: lockout must be positive, got %v", ErrInvalidConfig, c.Lockout)
	}
	return nil
}

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool          // Whether the attempt may proceed
	Remaining  int           // Attempts left in the current window
	RetryAfter time.Duration // How long to wait when denied; zero when allowed
	Degraded   bool          // True when the backing store was unreachable and the check failed open
}

// Limiter counts login attempts per source identifier and enforces a lockout
// period once the budget is exhausted. When the backing store is unreachable
// the limiter fails open: login availability takes priority over limiting,
// and the degraded mode is logged.
type Limiter struct {
	store  Store
	config Config
	logger *slog.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the logger used for degraded-mode warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a login rate limiter backed by the given store.
func New(store Store, config Config, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	l := &Limiter{
		store:  store,
		config: config,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Check records one attempt for the given source identifier and reports
// whether it may proceed. Exceeding MaxAttempts within the window starts a
// lockout that outlives the window itself.
func (l *Limiter) Check(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	locked, err := l.store.LockoutRemaining(ctx, key)
	if err != nil {
		return l.failOpen(ctx, key, err), nil
	}
	if locked > 0 {
		return &Result{Allowed: false, RetryAfter: locked}, nil
	}

	count, err := l.store.Increment(ctx, key, l.config.Window)
	if err != nil {
		return l.failOpen(ctx, key, err), nil
	}

	if count > int64(l.config.MaxAttempts) {
		if err := l.store.Lock(ctx, key, l.config.Lockout); err != nil {
			return l.failOpen(ctx, key, err), nil
		}
		return &Result{Allowed: false, RetryAfter: l.config.Lockout}, nil
	}

	return &Result{
		Allowed:   true,
		Remaining: l.config.MaxAttempts - int(count),
	}, nil
}

// Reset clears the attempt counter and any lockout for the key. Called only
// after a fully successful authentication, never after an intermediate
// two-factor challenge.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return l.store.Reset(ctx, key)
}

func (l *Limiter) failOpen(ctx context.Context, key string, err error) *Result {
	l.logger.WarnContext(ctx, "rate limit store unreachable, failing open",
		slog.String("key", key),
		slog.Any("error", err),
	)
	return &Result{Allowed: true, Remaining: l.config.MaxAttempts, Degraded: true}
}
