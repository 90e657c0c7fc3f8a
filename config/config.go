// Package config loads server settings from defaults, an optional TOML file,
// a .env file, the environment and command-line flags, in rising precedence.
package config

import (
	"io/fs"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"things_future/session"
)

// Config is the resolved server configuration.
type Config struct {
	Addr       string         `mapstructure:"addr"`
	Words      string         `mapstructure:"words"`
	Static     string         `mapstructure:"static"`
	ShareURL   string         `mapstructure:"share_url"`
	LogJSON    bool           `mapstructure:"log_json"`
	Debug      bool           `mapstructure:"debug"`
	Watch      bool           `mapstructure:"watch"`
	Reconcile  bool           `mapstructure:"reconcile"`
	SessionTTL time.Duration  `mapstructure:"session_ttl"`
	Delays     session.Delays `mapstructure:"delays"`
	Gemini     Gemini         `mapstructure:"gemini"`
}

// Gemini configures the optional scenario writer.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"addr":      "addr",
	"words":     "words",
	"static":    "static",
	"share-url": "share_url",
	"log-json":  "log_json",
	"debug":     "debug",
	"watch":     "watch",
	"reconcile": "reconcile",
}

// SetDefaults registers every key so environment overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", "0.0.0.0:9779")
	v.SetDefault("words", "./static/Things-DB-app.json")
	v.SetDefault("static", "./static")
	v.SetDefault("share_url", "https://eclectic-bonbon-b1e2cd.netlify.app")
	v.SetDefault("log_json", false)
	v.SetDefault("debug", false)
	v.SetDefault("watch", false)
	v.SetDefault("reconcile", false)
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("delays.one", session.DefaultDelays.One)
	v.SetDefault("delays.animate", session.DefaultDelays.Animate)
	v.SetDefault("delays.settle", session.DefaultDelays.Settle)
	v.SetDefault("delays.release", session.DefaultDelays.Release)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
}

// Load resolves the configuration. configFile may be empty, in which case
// things-future.toml in the working directory is used when present. flags may
// be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("TFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", "TFF_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, errors.Wrap(err, "bind gemini key")
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("things-future")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Words == "" {
		return errors.New("words source must not be empty")
	}
	d := c.Delays
	if d.One < 0 || d.Animate < 0 || d.Settle < 0 || d.Release < 0 {
		return errors.WithHint(errors.New("delays must not be negative"), "use 0 to disable a pause")
	}
	return nil
}

// ScenarioEnabled reports whether a Gemini key was configured.
func (c *Config) ScenarioEnabled() bool {
	return c.Gemini.APIKey != ""
}
