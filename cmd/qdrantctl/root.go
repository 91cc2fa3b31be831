package main

import (
	"fmt"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/qdrant"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/rest"
	"github.com/spf13/cobra"
)

const (
	transportREST = "rest"
	transportGRPC = "grpc"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	transport string
	config    string
	url       string
	host      string
	port      int
	apiKey    string
	timeout   time.Duration
	logLevel  string
	json      bool
}

func NewRootCmd(version string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "qdrantctl",
		Short:         "Inspect and administer a Qdrant deployment",
		Long:          `qdrantctl talks to Qdrant over REST or gRPC using the same client library applications use.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd, opts)

	connect := func(cmd *cobra.Command) (backend, error) {
		return opts.connect(cmd)
	}
	rootCmd.AddCommand(
		NewHealthCmd(connect, opts),
		NewVersionCheckCmd(connect, opts),
		NewCollectionsCmd(connect, opts),
		NewSnapshotsCmd(connect, opts),
	)
	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command, opts *globalOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.transport, "transport", transportREST, "Transport to use (rest|grpc)")
	flags.StringVar(&opts.config, "config", "", "YAML client config file")
	flags.StringVar(&opts.url, "url", "", "Server URL, e.g. http://localhost:6333")
	flags.StringVar(&opts.host, "host", "", "Server host name")
	flags.IntVar(&opts.port, "port", 0, "Server port")
	flags.StringVar(&opts.apiKey, "api-key", "", "API key")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Per-request timeout, negative disables it")
	flags.StringVar(&opts.logLevel, "log-level", logger.Warning, "Log level (debug|info|warning|error)")
	flags.BoolVar(&opts.json, "json", false, "Output in JSON format")
}

// connect builds a client for the selected transport. Flags set explicitly
// override values read from --config.
func (o *globalOptions) connect(cmd *cobra.Command) (backend, error) {
	lcfg := logger.DefaultConfig()
	lcfg.Level = o.logLevel
	log, err := logger.NewLoggerClient(lcfg)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed

	switch o.transport {
	case transportREST:
		cfg := rest.DefaultConfig()
		if o.config != "" {
			if cfg, err = rest.LoadConfig(o.config); err != nil {
				return nil, err
			}
		}
		if changed("url") {
			cfg.URL = o.url
		}
		if changed("host") {
			cfg.Host = o.host
		}
		if changed("port") {
			cfg.Port = o.port
		}
		if changed("api-key") {
			cfg.APIKey = o.apiKey
		}
		if changed("timeout") || o.config == "" {
			cfg.Timeout = o.timeout
		}
		cfg.CheckCompatibility = false

		c, err := rest.NewClient(cfg, rest.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return restBackend{c: c}, nil

	case transportGRPC:
		cfg := qdrant.DefaultConfig()
		if o.config != "" {
			if cfg, err = qdrant.LoadConfig(o.config); err != nil {
				return nil, err
			}
		}
		if changed("url") {
			cfg.URL = o.url
		}
		if changed("host") {
			cfg.Host = o.host
		}
		if changed("port") {
			cfg.Port = o.port
		}
		if changed("api-key") {
			cfg.APIKey = o.apiKey
		}
		if changed("timeout") || o.config == "" {
			cfg.Timeout = o.timeout
		}
		cfg.CheckCompatibility = false

		c, err := qdrant.NewClient(cfg, qdrant.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return grpcBackend{c: c}, nil

	default:
		return nil, fmt.Errorf("unknown transport %q, expected %s or %s", o.transport, transportREST, transportGRPC)
	}
}
