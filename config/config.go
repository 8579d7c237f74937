// Package config loads runtime configuration for the capture tool from a
// config file, with environment overrides. Validation happens at load so
// a bad value fails startup instead of a running capture.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/markrepedersen/netparser/sniffer"
	"github.com/markrepedersen/netparser/stream"
)

// Capture capture source settings. Exactly one of Device and File must
// be set.
type Capture struct {
	Device      string        `mapstructure:"device"`
	File        string        `mapstructure:"file"`
	SnapLen     int           `mapstructure:"snaplen"`
	Promiscuous bool          `mapstructure:"promiscuous"`
	Monitor     bool          `mapstructure:"monitor"`
	Filter      string        `mapstructure:"filter"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Stream packet stream settings.
type Stream struct {
	Buffer int    `mapstructure:"buffer"`
	Policy string `mapstructure:"policy"`
}

// Log logging settings. File is optional; when set, logs rotate there
// instead of going to stderr.
type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Config full runtime configuration.
type Config struct {
	Capture Capture `mapstructure:"capture"`
	Stream  Stream  `mapstructure:"stream"`
	Log     Log     `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	// Every key gets a default so environment overrides bind even when
	// the config file omits the section.
	v.SetDefault("capture.device", "")
	v.SetDefault("capture.file", "")
	v.SetDefault("capture.promiscuous", false)
	v.SetDefault("capture.monitor", false)
	v.SetDefault("capture.filter", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.compress", false)
	v.SetDefault("capture.snaplen", sniffer.DefaultSnapLen)
	v.SetDefault("capture.timeout", sniffer.DefaultTimeout)
	v.SetDefault("stream.buffer", stream.DefaultBuffer)
	v.SetDefault("stream.policy", "block")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// Load read configuration from path, or from netparser.yml in the
// working directory or /etc/netparser when path is empty. Environment
// variables prefixed NETPARSER_ override file values (for example
// NETPARSER_CAPTURE_DEVICE). A missing file is not an error; defaults
// and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("netparser")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/netparser")
	}

	v.SetEnvPrefix("netparser")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Stream.Policy {
	case "block", "drop-oldest":
	default:
		return fmt.Errorf("invalid stream policy %q (want block or drop-oldest)", c.Stream.Policy)
	}
	if c.Stream.Buffer < 0 {
		return fmt.Errorf("invalid stream buffer %d", c.Stream.Buffer)
	}

	return nil
}

// SnifferConfig map the capture section onto a sniffer configuration.
func (c *Config) SnifferConfig() sniffer.Config {
	return sniffer.Config{
		Device:      c.Capture.Device,
		File:        c.Capture.File,
		SnapLen:     c.Capture.SnapLen,
		Promiscuous: c.Capture.Promiscuous,
		Monitor:     c.Capture.Monitor,
		Filter:      c.Capture.Filter,
		Timeout:     c.Capture.Timeout,
	}
}

// StreamOptions map the stream section onto stream options.
func (c *Config) StreamOptions() stream.Options {
	opts := stream.Options{Buffer: c.Stream.Buffer}
	if c.Stream.Policy == "drop-oldest" {
		opts.Policy = stream.DropOldest
	}

	return opts
}
