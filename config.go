package qbell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. QBELL_PORT.
const EnvPrefix = "QBELL"

/*
CORSConfig is the cross-origin policy of the HTTP front door. The
defaults allow any origin. Leaving AllowOrigin empty turns the headers off.
*/
type CORSConfig struct {
	AllowOrigin  string `mapstructure:"allow_origin"`
	AllowHeaders string `mapstructure:"allow_headers"`
	AllowMethods string `mapstructure:"allow_methods"`
}

type Config struct {
	Host          string     `mapstructure:"host"`
	Port          int        `mapstructure:"port"`
	Debug         bool       `mapstructure:"debug"`
	Backend       string     `mapstructure:"backend"`
	SeedSimulator uint64     `mapstructure:"seed_simulator"`
	MetricsAddr   string     `mapstructure:"metrics_addr"`
	LogLevel      string     `mapstructure:"log_level"`
	CORS          CORSConfig `mapstructure:"cors"`
}

func NewConfig() *Config {
	return &Config{
		Port:     5000,
		Backend:  QasmSimulator,
		LogLevel: "info",
		CORS: CORSConfig{
			AllowOrigin:  "*",
			AllowHeaders: "Content-Type",
			AllowMethods: "GET, OPTIONS",
		},
	}
}

// SetDefaults seeds v with the values of NewConfig.
func SetDefaults(v *viper.Viper) {
	defaults := NewConfig()

	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("seed_simulator", defaults.SeedSimulator)
	v.SetDefault("metrics_addr", defaults.MetricsAddr)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("cors.allow_origin", defaults.CORS.AllowOrigin)
	v.SetDefault("cors.allow_headers", defaults.CORS.AllowHeaders)
	v.SetDefault("cors.allow_methods", defaults.CORS.AllowMethods)
}

/*
LoadConfig resolves the configuration from defaults, then the optional
file at path, then QBELL_* environment variables.
*/
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port %d out of range", c.Port)
	}

	if c.Backend == "" {
		return errors.New("backend must not be empty")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log_level %q", c.LogLevel)
	}

	return nil
}

// Addr is the listen address of the HTTP front door.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SimulatorOptions returns the options for the built-in simulator.
func (c *Config) SimulatorOptions() []SimulatorOption {
	if c.SeedSimulator == 0 {
		return nil
	}
	return []SimulatorOption{WithSeed(c.SeedSimulator)}
}

// ApplyLogLevel sets the process-wide log level.
func (c *Config) ApplyLogLevel() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
