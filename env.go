package fiscaldocs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey     = "FISCALDOCS_API_KEY"
	EnvBaseURL    = "FISCALDOCS_BASE_URL"
	EnvTimeout    = "FISCALDOCS_TIMEOUT"
	EnvMaxRetries = "FISCALDOCS_MAX_RETRIES"
)

// FromEnv creates a client configured from the environment, loading a .env
// file from the working directory when one exists. Explicit options are
// applied after the environment and take precedence.
func FromEnv(opts ...Option) (*Client, error) {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, &Error{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("%s is not set", EnvAPIKey),
		}
	}

	var envOpts []Option
	if v := os.Getenv(EnvBaseURL); v != "" {
		envOpts = append(envOpts, WithBaseURL(v))
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, &Error{
				Kind:    KindConfiguration,
				Message: fmt.Sprintf("invalid %s value %q", EnvTimeout, v),
				Err:     err,
			}
		}
		envOpts = append(envOpts, WithTimeout(d))
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, &Error{
				Kind:    KindConfiguration,
				Message: fmt.Sprintf("invalid %s value %q", EnvMaxRetries, v),
				Err:     err,
			}
		}
		envOpts = append(envOpts, WithRetries(n))
	}

	return New(apiKey, append(envOpts, opts...)...)
}
