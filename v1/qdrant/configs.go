package qdrant

import (
	"crypto/tls"
	"fmt"
	"os"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	"gopkg.in/yaml.v3"
)

// Config holds connection and behavior settings for the gRPC client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods.
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Host = "qdrant.internal"
//	cfg.APIKey = os.Getenv("QDRANT_API_KEY")
//	cfg.Timeout = 10 * time.Second
//
// Example (builder style):
//
//	cfg := qdrant.FromURL("https://xyz.cloud.qdrant.io:6334").
//	    WithAPIKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Full URL such as "https://localhost:6334". Mutually exclusive with Host.
	URL string `yaml:"url" env:"QDRANT_URL"`

	// Hostname of the Qdrant server, e.g. "localhost".
	Host string `yaml:"host" env:"QDRANT_HOST"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_GRPC_PORT"`

	// Dial the bare host without a port.
	OmitPort bool `yaml:"omit_port" env:"QDRANT_OMIT_PORT"`

	// Force TLS on or off. Unset means TLS only with an API key.
	HTTPS *bool `yaml:"https" env:"QDRANT_HTTPS"`

	// Validated like the REST prefix but not used on the wire.
	Prefix string `yaml:"prefix" env:"QDRANT_PREFIX"`

	// Optional authentication token for secured deployments.
	APIKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Maximum request duration before timing out. Zero fails every call;
	// transport.NoTimeout (or any negative value) disables it.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Connection establishment timeout.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"QDRANT_CONNECT_TIMEOUT"`

	// Whether to send keepalive pings on idle connections.
	KeepAlive bool `yaml:"keep_alive" env:"QDRANT_KEEP_ALIVE"`

	// Interval between keepalive pings.
	KeepAliveTime time.Duration `yaml:"keep_alive_time" env:"QDRANT_KEEP_ALIVE_TIME"`

	// How long to wait for a ping acknowledgement.
	KeepAliveTimeout time.Duration `yaml:"keep_alive_timeout" env:"QDRANT_KEEP_ALIVE_TIMEOUT"`

	// Enable gzip compression for requests.
	Compression bool `yaml:"compression" env:"QDRANT_COMPRESSION"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`

	// Static metadata added to every call.
	Headers map[string]string `yaml:"headers"`

	// Custom TLS settings. Nil uses TLS 1.3 with system roots.
	TLSConfig *tls.Config `yaml:"-"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Timeout:            5 * time.Second,
		ConnectTimeout:     5 * time.Second,
		KeepAlive:          true,
		KeepAliveTime:      10 * time.Second,
		KeepAliveTimeout:   2 * time.Second,
		Compression:        false,
		CheckCompatibility: true,
	}
}

// FromHost returns a default config pre-filled with a host.
func FromHost(host string) *Config {
	cfg := DefaultConfig()
	cfg.Host = host
	return cfg
}

// FromURL returns a default config pre-filled with a URL.
func FromURL(url string) *Config {
	cfg := DefaultConfig()
	cfg.URL = url
	return cfg
}

// Builder-style helpers (optional, ergonomic)

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithHTTPS(enabled bool) *Config {
	c.HTTPS = &enabled
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithCompression(enabled bool) *Config {
	c.Compression = enabled
	return c
}

func (c *Config) WithKeepAlive(enabled bool) *Config {
	c.KeepAlive = enabled
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

// LoadConfig reads a YAML file on top of DefaultConfig, expanding ${VAR}
// references from the environment first.
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
