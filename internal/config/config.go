// Package config centralizes the flags and environment variables
// cmd/frost's subcommands share: the demo data directory, the log level,
// the simulated transport parameters, and the unsafe-demo-nonce-file gate.
// Grounded on the luxfi-threshold example's cmd/threshold-cli, which binds
// the same global persistent flags onto package-level cobra commands.
package config

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/frostlink/frost/internal/transport"
)

// Config holds every setting cmd/frost's subcommands read, populated from
// CLI flags with an environment-variable fallback for the unsafe nonce
// file gate.
type Config struct {
	DataDir    string
	DebugLevel string

	TransportLatencyMs int
	TransportLossRate  float64
	TransportFragBytes int
	TransportMaxRetry  int

	UnsafeDemoNonceFile bool
	HTTPAddr            string
}

// Default returns the configuration cmd/frost starts from before flags are
// parsed.
func Default() *Config {
	return &Config{
		DataDir:             "./frost-data",
		DebugLevel:          "info",
		TransportLatencyMs:  500,
		TransportLossRate:   0.10,
		TransportFragBytes:  64,
		TransportMaxRetry:   3,
		UnsafeDemoNonceFile: unsafeNonceFileFromEnv(),
		HTTPAddr:            ":8080",
	}
}

// unsafeNonceFileFromEnv reads the FROST_UNSAFE_DEMO_NONCE_FILE=1
// environment variable fallback for the --unsafe-demo-nonce-file flag.
func unsafeNonceFileFromEnv() bool {
	v, ok := os.LookupEnv("FROST_UNSAFE_DEMO_NONCE_FILE")
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}

// BindPersistentFlags registers the flags shared by every subcommand onto
// fs. A flag left at its zero value after parsing does not override the
// environment-derived default for UnsafeDemoNonceFile, since pflag.BoolVar
// only overwrites the variable when the flag is actually set.
func (c *Config) BindPersistentFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "directory for demo CLI artifacts (share_*.json, pubkey.json, ...)")
	fs.StringVar(&c.DebugLevel, "debuglevel", c.DebugLevel, "logging level: trace, debug, info, warn, error, critical, off")
	fs.BoolVar(&c.UnsafeDemoNonceFile, "unsafe-demo-nonce-file", c.UnsafeDemoNonceFile, "allow persisting round-one nonces to disk across CLI invocations (demo only, never use in production)")
}

// BindTransportFlags registers the simulated link parameters onto fs,
// defaulting to the recommended {500ms, 10% loss, 64-byte fragments, 3 retries}.
func (c *Config) BindTransportFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.TransportLatencyMs, "transport-latency-ms", c.TransportLatencyMs, "simulated per-fragment latency in milliseconds")
	fs.Float64Var(&c.TransportLossRate, "transport-loss-rate", c.TransportLossRate, "simulated per-fragment loss probability in [0,1]")
	fs.IntVar(&c.TransportFragBytes, "transport-fragment-bytes", c.TransportFragBytes, "simulated link fragment size in bytes")
	fs.IntVar(&c.TransportMaxRetry, "transport-max-retries", c.TransportMaxRetry, "maximum retries per lost fragment")
}

// BindHTTPFlags registers the serve subcommand's listen address flag.
func (c *Config) BindHTTPFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.HTTPAddr, "addr", c.HTTPAddr, "HTTP listen address for the serve subcommand")
}

// TransportConfig converts the parsed flags into a transport.Config.
func (c *Config) TransportConfig() transport.Config {
	return transport.Config{
		LatencyPerFragmentMs: c.TransportLatencyMs,
		LossRate:             c.TransportLossRate,
		FragmentSizeBytes:    c.TransportFragBytes,
		MaxRetries:           c.TransportMaxRetry,
		RetryBackoffMs:       200,
	}
}
