package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultRangeURL = "https://api.pwnedpasswords.com/range/"

// Result reports whether a password appeared in known breach corpora.
type Result struct {
	Compromised bool
	Count       int // Number of times the password was seen in breaches
}

// Checker queries the Pwned Passwords range API using k-anonymity:
// only the first five hex characters of the password's SHA-1 leave the
// process, never the password or its full hash.
type Checker struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.httpClient = client
	}
}

// WithBaseURL overrides the range API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Checker) {
		c.baseURL = strings.TrimSuffix(url, "/") + "/"
	}
}

// NewChecker creates a breach checker with a 10 second request timeout.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultRangeURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reports whether the password appears in known breaches.
// Callers treat failures as advisory: a breach lookup must never block
// account operations, so errors are surfaced but not fatal.
func (c *Checker) Check(ctx context.Context, password string) (Result, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:5], digest[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+prefix, nil)
	if err != nil {
		return Result{}, errors.Join(ErrLookupFailed, err)
	}
	// Padded responses hide which range sizes we fetch from network observers.
	req.Header.Set("Add-Padding", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, errors.Join(ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, errors.Join(ErrLookupFailed, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, count, found := parseRangeLine(line)
		if !found {
			continue
		}
		if rest == suffix {
			return Result{Compromised: count > 0, Count: count}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, errors.Join(ErrLookupFailed, err)
	}

	return Result{}, nil
}

// parseRangeLine splits a "SUFFIX:COUNT" response line.
func parseRangeLine(line string) (suffix string, count int, ok bool) {
	suffix, countStr, found := strings.Cut(line, ":")
	if !found {
		return "", 0, false
	}
	count, err := strconv.Atoi(strings.TrimSpace(countStr))
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(suffix), count, true
}
