package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func boolPtr(b bool) *bool { return &b }

func TestResolve_BaseURI(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		defaults Defaults
		want     string
	}{
		{
			name:     "rest defaults",
			params:   Params{},
			defaults: RESTDefaults,
			want:     "http://localhost:6333",
		},
		{
			name:     "grpc defaults",
			params:   Params{},
			defaults: GRPCDefaults,
			want:     "http://127.0.0.1:6334",
		},
		{
			name:     "host with prefix without slash",
			params:   Params{Host: "hidden_port_addr.com", Prefix: "custom"},
			defaults: RESTDefaults,
			want:     "http://hidden_port_addr.com:6333/custom",
		},
		{
			name:     "host with prefix with slash",
			params:   Params{Host: "example.com", Prefix: "/custom"},
			defaults: RESTDefaults,
			want:     "http://example.com:6333/custom",
		},
		{
			name:     "host with explicit port",
			params:   Params{Host: "example.com", Port: 7000},
			defaults: RESTDefaults,
			want:     "http://example.com:7000",
		},
		{
			name:     "host with omitted port",
			params:   Params{Host: "example.com", OmitPort: true, Prefix: "custom"},
			defaults: RESTDefaults,
			want:     "http://example.com/custom",
		},
		{
			name:     "explicit https",
			params:   Params{Host: "example.com", HTTPS: boolPtr(true)},
			defaults: RESTDefaults,
			want:     "https://example.com:6333",
		},
		{
			name:     "api key defaults to https",
			params:   Params{Host: "example.com", APIKey: "secret"},
			defaults: RESTDefaults,
			want:     "https://example.com:6333",
		},
		{
			name:     "url without port uses default port",
			params:   Params{URL: "https://localhost"},
			defaults: RESTDefaults,
			want:     "https://localhost:6333",
		},
		{
			name:     "url with port",
			params:   Params{URL: "http://localhost:7333"},
			defaults: RESTDefaults,
			want:     "http://localhost:7333",
		},
		{
			name:     "url with root path and prefix",
			params:   Params{URL: "http://localhost:6333/", Prefix: "custom"},
			defaults: RESTDefaults,
			want:     "http://localhost:6333/custom",
		},
		{
			name:     "url path becomes prefix",
			params:   Params{URL: "http://localhost:6333/custom/"},
			defaults: RESTDefaults,
			want:     "http://localhost:6333/custom",
		},
		{
			name:     "url without port and omitted port",
			params:   Params{URL: "https://xyz.cloud.qdrant.io", OmitPort: true},
			defaults: RESTDefaults,
			want:     "https://xyz.cloud.qdrant.io",
		},
		{
			name:     "url scheme wins over https flag",
			params:   Params{URL: "http://localhost:6333", HTTPS: boolPtr(true)},
			defaults: RESTDefaults,
			want:     "http://localhost:6333",
		},
		{
			name:     "ipv6 url with port",
			params:   Params{URL: "http://[::1]:6333"},
			defaults: RESTDefaults,
			want:     "http://[::1]:6333",
		},
		{
			name:     "ipv6 url without port uses default port",
			params:   Params{URL: "http://[::1]"},
			defaults: GRPCDefaults,
			want:     "http://[::1]:6334",
		},
		{
			name:     "ipv6 url with omitted port",
			params:   Params{URL: "http://[::1]", OmitPort: true},
			defaults: RESTDefaults,
			want:     "http://[::1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Resolve(tt.params, tt.defaults, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, conn.BaseURI)
		})
	}
}

func TestResolve_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{name: "url and host", params: Params{URL: "http://localhost:6333", Host: "localhost"}},
		{name: "host with http scheme", params: Params{Host: "http://localhost"}},
		{name: "host with https scheme", params: Params{Host: "https://localhost"}},
		{name: "host with port", params: Params{Host: "localhost:6333"}},
		{name: "url without scheme", params: Params{URL: "localhost:6333"}},
		{name: "url with other scheme", params: Params{URL: "grpc://localhost:6334"}},
		{name: "url path and prefix", params: Params{URL: "http://localhost:6333/custom", Prefix: "other"}},
		{name: "negative port", params: Params{Host: "localhost", Port: -1}},
		{name: "port above range", params: Params{Host: "localhost", Port: 65536}},
		{name: "url port above range", params: Params{URL: "http://localhost:70000"}},
		{name: "url port zero", params: Params{URL: "http://localhost:0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Resolve(tt.params, RESTDefaults, nil)
			require.Error(t, err)
			assert.Nil(t, conn)
			assert.True(t, IsConfigError(err))

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.NotEmpty(t, cfgErr.Reason)
		})
	}
}

func TestResolve_Fields(t *testing.T) {
	conn, err := Resolve(Params{URL: "https://db.example.com:7443/base"}, GRPCDefaults, nil)
	require.NoError(t, err)

	assert.Equal(t, "https", conn.Scheme)
	assert.Equal(t, "db.example.com", conn.Host)
	assert.Equal(t, 7443, conn.Port)
	assert.True(t, conn.HasPort)
	assert.Equal(t, "/base", conn.Prefix)
	assert.Equal(t, "db.example.com:7443", conn.Address())
	assert.True(t, conn.Secure())
}

func TestResolve_AddressWithoutPort(t *testing.T) {
	conn, err := Resolve(Params{Host: "db.example.com", OmitPort: true}, GRPCDefaults, nil)
	require.NoError(t, err)
	assert.Equal(t, "db.example.com", conn.Address())
	assert.False(t, conn.Secure())
}

func TestResolve_IPv6Address(t *testing.T) {
	conn, err := Resolve(Params{URL: "http://[::1]:6334"}, GRPCDefaults, nil)
	require.NoError(t, err)
	assert.Equal(t, "::1", conn.Host)
	assert.Equal(t, "[::1]:6334", conn.Address())

	conn, err = Resolve(Params{URL: "http://[fe80::1]", OmitPort: true}, GRPCDefaults, nil)
	require.NoError(t, err)
	assert.Equal(t, "[fe80::1]", conn.Address())
}

func TestResolve_PortBounds(t *testing.T) {
	conn, err := Resolve(Params{Host: "localhost", Port: MaxPort}, RESTDefaults, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:65535", conn.BaseURI)
}

func TestResolve_WarnsOnInsecureAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Nil(), gomock.Any()).Times(1)

	conn, err := Resolve(Params{Host: "localhost", APIKey: "secret", HTTPS: boolPtr(false)}, RESTDefaults, log)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:6333", conn.BaseURI)
}

func TestResolve_NoWarningOverHTTPS(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)

	_, err := Resolve(Params{Host: "localhost", APIKey: "secret"}, RESTDefaults, log)
	require.NoError(t, err)
}
