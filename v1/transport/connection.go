package transport

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"
)

var trailingPort = regexp.MustCompile(`:\d+$`)

// ConnectionConfig is the normalized endpoint derived from Params. It is
// computed once when a client is constructed and never mutated afterwards.
type ConnectionConfig struct {
	// Scheme is either "http" or "https".
	Scheme string

	// Host is the bare hostname. IPv6 literals are stored without brackets.
	Host string

	// Port is only meaningful when HasPort is true.
	Port int

	// HasPort is false when the caller asked for the port to be omitted.
	HasPort bool

	// Prefix is empty or starts with "/".
	Prefix string

	// BaseURI is "{scheme}://{host}[:{port}]{prefix}".
	BaseURI string
}

// Address returns "host[:port]", the form used as a gRPC dial target.
// IPv6 literals are bracketed.
func (c *ConnectionConfig) Address() string {
	if !c.HasPort {
		if strings.Contains(c.Host, ":") {
			return "[" + c.Host + "]"
		}
		return c.Host
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Secure reports whether the resolved scheme is https.
func (c *ConnectionConfig) Secure() bool {
	return c.Scheme == schemeHTTPS
}

// Resolve validates the connection parameters and produces the normalized
// ConnectionConfig. The only side effect is a warning logged through log when
// an API key would be sent over plain http; log may be nil.
//
// Example:
//
//	conn, err := transport.Resolve(transport.Params{Host: "db.internal", Prefix: "qdrant"}, transport.RESTDefaults, nil)
//	// conn.BaseURI == "http://db.internal:6333/qdrant"
func Resolve(p Params, defaults Defaults, log Logger) (*ConnectionConfig, error) {
	if p.URL != "" && p.Host != "" {
		return nil, newConfigError("only one of url and host can be set, url is %q, host is %q", p.URL, p.Host)
	}

	if p.Host != "" && (strings.Contains(p.Host, "http://") || strings.Contains(p.Host, "https://") || trailingPort.MatchString(p.Host)) {
		return nil, newConfigError("host %q must contain neither a protocol (http:// or https://) nor a port (:6333), use url instead", p.Host)
	}

	prefix := normalizePrefix(p.Prefix)

	if p.Port < 0 || p.Port > MaxPort {
		return nil, newConfigError("port %d is out of range [1, %d]", p.Port, MaxPort)
	}
	port := p.Port
	if port == 0 {
		port = defaults.Port
	}
	hasPort := !p.OmitPort

	var conn ConnectionConfig

	if p.URL != "" {
		if !strings.HasPrefix(p.URL, "http://") && !strings.HasPrefix(p.URL, "https://") {
			return nil, newConfigError("url %q must start with a protocol (http:// or https://)", p.URL)
		}

		parsed, err := url.Parse(p.URL)
		if err != nil {
			return nil, newConfigError("url %q cannot be parsed: %v", p.URL, err)
		}
		if parsed.Hostname() == "" {
			return nil, newConfigError("url %q has no host", p.URL)
		}

		path := parsed.Path
		if path == "" {
			path = "/"
		}
		if prefix != "" && path != "/" {
			return nil, newConfigError("prefix can be set either in url or in prefix, url is %q, prefix is %q", p.URL, p.Prefix)
		}
		if prefix == "" && path != "/" {
			prefix = normalizePrefix(strings.TrimRight(path, "/"))
		}

		if urlPort := parsed.Port(); urlPort != "" {
			n, err := strconv.Atoi(urlPort)
			if err != nil {
				return nil, newConfigError("url %q has an invalid port: %v", p.URL, err)
			}
			if n < 1 || n > MaxPort {
				return nil, newConfigError("url %q has a port out of range [1, %d]", p.URL, MaxPort)
			}
			port = n
			hasPort = true
		}

		conn.Scheme = parsed.Scheme
		conn.Host = parsed.Hostname()
	} else {
		conn.Host = p.Host
		if conn.Host == "" {
			conn.Host = defaults.Host
		}

		switch {
		case p.HTTPS != nil && *p.HTTPS:
			conn.Scheme = schemeHTTPS
		case p.HTTPS != nil:
			conn.Scheme = schemeHTTP
		case p.APIKey != "":
			conn.Scheme = schemeHTTPS
		default:
			conn.Scheme = schemeHTTP
		}
	}

	if p.APIKey != "" && conn.Scheme == schemeHTTP && log != nil {
		log.Warn("[Qdrant] API key is used with an insecure connection", nil, map[string]interface{}{
			"host": conn.Host,
		})
	}

	conn.Port = port
	conn.HasPort = hasPort
	conn.Prefix = prefix
	conn.BaseURI = conn.Scheme + "://" + conn.Address() + prefix

	return &conn, nil
}

func normalizePrefix(prefix string) string {
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		return "/" + prefix
	}
	return prefix
}
