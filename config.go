package adhoc

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cast"
)

// Standard errors returned by the adhoc package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid client config")
)

// Config contains connection settings for a Flight SQL server.
type Config struct {
	// Host is the server hostname or IP.
	// REQUIRED: MUST NOT be empty.
	Host string

	// Port is the Flight SQL port (Dremio default: 32010).
	// REQUIRED: MUST be in 1..65535.
	Port int

	// User and Pass drive the Flight basic-auth handshake on connect.
	// OPTIONAL: If User is empty, no handshake is performed.
	User string
	Pass string

	// PAT is a personal access token attached to every call as a bearer
	// credential. OPTIONAL: Takes precedence over User/Pass when set.
	PAT string

	// TLS enables transport security.
	// OPTIONAL: Defaults to plaintext for local development servers.
	TLS bool

	// InsecureSkipVerify disables server certificate verification.
	// OPTIONAL: Only meaningful when TLS is true. Do not use in production.
	InsecureSkipVerify bool
}

// envPrefix is the prefix for environment overrides, e.g. ADHOC_FLIGHT_HOST.
const envPrefix = "ADHOC_FLIGHT_"

// FromEnv overlays ADHOC_FLIGHT_* environment variables on the config.
// Unset variables leave the corresponding field untouched.
func (c *Config) FromEnv() {
	if v, ok := os.LookupEnv(envPrefix + "HOST"); ok {
		c.Host = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PORT"); ok {
		c.Port = cast.ToInt(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "USER"); ok {
		c.User = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PASS"); ok {
		c.Pass = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PAT"); ok {
		c.PAT = v
	}
	if v, ok := os.LookupEnv(envPrefix + "TLS"); ok {
		c.TLS = cast.ToBool(v)
	}
}

// Addr returns the host:port dial target.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	return nil
}
