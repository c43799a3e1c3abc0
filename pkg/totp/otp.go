package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultDigits    = 6      // Standard 6-digit TOTP codes
	DefaultPeriod    = 30     // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm = "SHA1" // HMAC-SHA1 algorithm (RFC 6238 standard)

	// DefaultWindow is the clock-skew tolerance in time steps. One step in
	// each direction accepts codes from the previous and next 30-second
	// windows.
	DefaultWindow = 1
)

var (
	// ValidateSecretKeyRegex ensures Base32 format: uppercase A-Z, digits 2-7, optional padding
	ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

	codeRegex = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, DefaultDigits))
)

// URIParams contains the parameters for otpauth:// URI generation.
type URIParams struct {
	Secret      string // Base32-encoded TOTP secret key (required)
	AccountName string // User identifier such as the username (required)
	Issuer      string // Service name displayed in authenticator apps (required)
	Algorithm   string // HMAC algorithm (optional, defaults to SHA1)
	Digits      int    // Number of digits in generated codes (optional, defaults to 6)
	Period      int    // Code validity period in seconds (optional, defaults to 30)
}

// Validate ensures all required URI parameters are present and valid.
func (p URIParams) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

func (p URIParams) withDefaults() URIParams {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// GenerateSecretKey generates a new Base32-encoded secret key for TOTP
// enrollment. The secret is 160 bits, the RFC 4226 recommendation.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}

// URI creates a properly encoded otpauth:// URI for authenticator apps.
// The format follows the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func URI(params URIParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	params = params.withDefaults()

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", params.Secret)
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", params.Algorithm)
	query.Set("digits", fmt.Sprintf("%d", params.Digits))
	query.Set("period", fmt.Sprintf("%d", params.Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// Validate checks a user-supplied code against the secret with the default
// ±1 step clock-skew tolerance.
func Validate(secret, code string) (bool, error) {
	return ValidateWithWindow(secret, code, DefaultWindow)
}

// ValidateWithWindow checks a code accepting codes from up to window time
// steps before and after the current one. A window of 0 accepts only the
// current step.
func ValidateWithWindow(secret, code string, window int) (bool, error) {
	return validateAt(secret, code, window, time.Now())
}

// ValidateAt checks a code against the time step containing t. Intended for
// tests that need deterministic clock control.
func ValidateAt(secret, code string, window int, t time.Time) (bool, error) {
	return validateAt(secret, code, window, t)
}

func validateAt(secret, code string, window int, t time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCode
	}
	if window < 0 {
		window = 0
	}

	counter := t.Unix() / int64(DefaultPeriod)

	for i := -window; i <= window; i++ {
		candidate := hotp(key, counter+int64(i), DefaultDigits)
		if fmt.Sprintf("%06d", candidate) == code {
			return true, nil
		}
	}

	return false, nil
}

// GenerateCode generates the code for the current 30-second window.
func GenerateCode(secret string) (string, error) {
	return GenerateCodeAt(secret, time.Now())
}

// GenerateCodeAt generates the code for the 30-second window containing t.
// Useful for tests or for generating codes for specific moments.
func GenerateCodeAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	counter := t.Unix() / int64(DefaultPeriod)
	return fmt.Sprintf("%06d", hotp(key, counter, DefaultDigits)), nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if !ValidateSecretKeyRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements the RFC 4226 HMAC-based one-time password algorithm,
// converting a counter value into a numeric code using HMAC-SHA1.
func hotp(key []byte, counter int64, digits int) int {
	// Counter is encoded big-endian into 8 bytes (RFC 4226 requirement)
	counterBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes)
	sum := mac.Sum(nil)

	// Dynamic truncation (RFC 4226): last 4 bits select the offset,
	// MSB cleared to keep the value positive
	offset := sum[len(sum)-1] & 0x0f
	value := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]&0xff) << 16) |
		(int(sum[offset+2]&0xff) << 8) |
		int(sum[offset+3]&0xff)

	return value % int(math.Pow10(digits))
}
