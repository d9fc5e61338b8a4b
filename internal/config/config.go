// Package config loads the notifyurl CLI settings from the config file,
// NOTIFYURL_* environment variables and command line flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/btraven00/notifyurl/internal/checker"
	"github.com/btraven00/notifyurl/pkg/extractor"
	"github.com/btraven00/notifyurl/pkg/urlparse"
	"github.com/btraven00/notifyurl/pkg/validators"
)

// EnvPrefix prefixes every environment variable, so parse.strict_port is
// read from NOTIFYURL_PARSE_STRICT_PORT.
const EnvPrefix = "NOTIFYURL"

// Config keys.
const (
	KeyOutput           = "output"
	KeyLogLevel         = "log_level"
	KeyWorkers          = "workers"
	KeyParseSchema      = "parse.default_schema"
	KeyParseVerify      = "parse.verify_host"
	KeyParseStrictPort  = "parse.strict_port"
	KeyParseSanitize    = "parse.sanitize"
	KeyParsePlusToSpace = "parse.plus_to_space"
	KeyParseSimple      = "parse.simple"
	KeyStoreUnparseable = "extract.store_unparseable"
	KeyPhonePrefix      = "extract.prefix"
	KeyPhoneMinLength   = "phone_min_length"
)

// Config holds the resolved CLI settings.
type Config struct {
	Output         string            `mapstructure:"output"`
	LogLevel       string            `mapstructure:"log_level"`
	Parse          ParseConfig       `mapstructure:"parse"`
	Extract        extractor.Options `mapstructure:"extract"`
	Workers        int               `mapstructure:"workers"`
	PhoneMinLength int               `mapstructure:"phone_min_length"`
}

// ParseConfig mirrors urlparse.Options.
type ParseConfig struct {
	DefaultSchema string `mapstructure:"default_schema"`
	VerifyHost    bool   `mapstructure:"verify_host"`
	StrictPort    bool   `mapstructure:"strict_port"`
	Sanitize      bool   `mapstructure:"sanitize"`
	PlusToSpace   bool   `mapstructure:"plus_to_space"`
	Simple        bool   `mapstructure:"simple"`
}

// Options converts the settings for urlparse.Parse.
func (p ParseConfig) Options() urlparse.Options {
	return urlparse.Options{
		DefaultSchema: p.DefaultSchema,
		VerifyHost:    p.VerifyHost,
		StrictPort:    p.StrictPort,
		Sanitize:      p.Sanitize,
		PlusToSpace:   p.PlusToSpace,
		Simple:        p.Simple,
	}
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	parse := urlparse.DefaultOptions()
	extract := extractor.DefaultOptions()

	v.SetDefault(KeyOutput, string(checker.OutputHuman))
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(KeyWorkers, checker.DefaultWorkers)
	v.SetDefault(KeyParseSchema, parse.DefaultSchema)
	v.SetDefault(KeyParseVerify, parse.VerifyHost)
	v.SetDefault(KeyParseStrictPort, parse.StrictPort)
	v.SetDefault(KeyParseSanitize, parse.Sanitize)
	v.SetDefault(KeyParsePlusToSpace, parse.PlusToSpace)
	v.SetDefault(KeyParseSimple, parse.Simple)
	v.SetDefault(KeyStoreUnparseable, extract.StoreUnparseable)
	v.SetDefault(KeyPhonePrefix, extract.Prefix)
	v.SetDefault(KeyPhoneMinLength, validators.DefaultPhoneMinLength)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects unknown output formats and log levels and fills in
// non-positive sizes.
func (c *Config) Validate() error {
	if _, err := checker.ParseOutputFormat(c.Output); err != nil {
		return err
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}

	if c.Workers <= 0 {
		c.Workers = checker.DefaultWorkers
	}

	if c.PhoneMinLength <= 0 {
		c.PhoneMinLength = validators.DefaultPhoneMinLength
	}

	return nil
}

// CheckerConfig builds the checker settings.
func (c *Config) CheckerConfig(logger zerolog.Logger, verbose bool) (checker.Config, error) {
	format, err := checker.ParseOutputFormat(c.Output)
	if err != nil {
		return checker.Config{}, err
	}

	classify := validators.DefaultClassifyOptions()
	classify.PhoneMinLength = c.PhoneMinLength

	return checker.Config{
		Logger:       logger,
		OutputFormat: format,
		ParseOptions: c.Parse.Options(),
		Classify:     classify,
		Workers:      c.Workers,
		Verbose:      verbose,
	}, nil
}
