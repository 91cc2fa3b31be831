package rest

import (
	"fmt"
	"os"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	"gopkg.in/yaml.v3"
)

// Config holds connection and behavior settings for the REST client.
//
// Example (programmatic):
//
//	cfg := rest.DefaultConfig()
//	cfg.Host = "qdrant.internal"
//	cfg.APIKey = os.Getenv("QDRANT_API_KEY")
//
// Example (builder style):
//
//	cfg := rest.FromURL("https://xyz.cloud.qdrant.io").
//	    WithAPIKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(30 * time.Second)
type Config struct {
	// Full base URL, e.g. "https://localhost:6333/prefix". Mutually
	// exclusive with Host.
	URL string `yaml:"url" env:"QDRANT_URL"`

	// Bare hostname without scheme or port.
	Host string `yaml:"host" env:"QDRANT_HOST"`

	// REST port. Zero selects 6333.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// OmitPort leaves the port out of the base URI entirely, e.g. behind a
	// reverse proxy on the scheme's default port.
	OmitPort bool `yaml:"omit_port" env:"QDRANT_OMIT_PORT"`

	// HTTPS forces the scheme when set. Unset means https only with an API key.
	HTTPS *bool `yaml:"https" env:"QDRANT_HTTPS"`

	// URL path prefix for every request.
	Prefix string `yaml:"prefix" env:"QDRANT_PREFIX"`

	// Optional authentication token sent as the "api-key" header.
	APIKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Maximum request duration. Zero fails every call with a TimeoutError;
	// transport.NoTimeout (or any negative value) disables the timeout.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to compare client and server versions after construction.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`

	// Static headers added to every request.
	Headers map[string]string `yaml:"headers"`

	// Upper bound on connections per host. Zero means unlimited.
	MaxConnsPerHost int `yaml:"max_conns_per_host" env:"QDRANT_MAX_CONNS_PER_HOST"`

	// How long idle keep-alive connections are kept in the pool.
	KeepAliveTimeout time.Duration `yaml:"keep_alive_timeout" env:"QDRANT_KEEP_ALIVE_TIMEOUT"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Timeout:            300 * time.Second,
		CheckCompatibility: true,
		MaxConnsPerHost:    100,
		KeepAliveTimeout:   60 * time.Second,
	}
}

// FromURL returns a default config pointing at url.
func FromURL(url string) *Config {
	cfg := DefaultConfig()
	cfg.URL = url
	return cfg
}

// FromHost returns a default config pointing at host on the default port.
func FromHost(host string) *Config {
	cfg := DefaultConfig()
	cfg.Host = host
	return cfg
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithoutPort() *Config {
	c.OmitPort = true
	return c
}

func (c *Config) WithHTTPS(enabled bool) *Config {
	c.HTTPS = &enabled
	return c
}

func (c *Config) WithPrefix(prefix string) *Config {
	c.Prefix = prefix
	return c
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}

func (c *Config) WithHeader(name, value string) *Config {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[name] = value
	return c
}

// Params returns the connection parameters understood by transport.Resolve.
func (c *Config) Params() transport.Params {
	return transport.Params{
		URL:      c.URL,
		Host:     c.Host,
		Port:     c.Port,
		OmitPort: c.OmitPort,
		HTTPS:    c.HTTPS,
		Prefix:   c.Prefix,
		APIKey:   c.APIKey,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. ${VAR} references
// are expanded from the environment before parsing.
//
//	url: https://${QDRANT_CLUSTER}.cloud.qdrant.io
//	api_key: ${QDRANT_API_KEY}
//	timeout: 30s
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), cfg); err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
