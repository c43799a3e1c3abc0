package auth

import "time"

// Config holds the tunable parameters of the authentication engine,
// populated from environment variables via caarlos0/env.
type Config struct {
	BcryptCost    int           `env:"AUTH_BCRYPT_COST" envDefault:"12"`
	ResetTokenTTL time.Duration `env:"AUTH_RESET_TOKEN_TTL" envDefault:"30m"`
	TOTPIssuer    string        `env:"AUTH_TOTP_ISSUER" envDefault:"vaultkit"`
}

// WithConfig applies a Config in one option.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.BcryptCost > 0 {
			s.bcryptCost = cfg.BcryptCost
		}
		if cfg.ResetTokenTTL > 0 {
			s.resetTokenTTL = cfg.ResetTokenTTL
		}
		if cfg.TOTPIssuer != "" {
			s.totpIssuer = cfg.TOTPIssuer
		}
	}
}
