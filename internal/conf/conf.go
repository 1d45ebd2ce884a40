package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Conf holds the loaded configuration. InitConf must run before it is read.
var Conf = viper.New()

// Config is the typed view of Conf
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Report   ReportConfig   `mapstructure:"report"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultsConfig supplies pipe inputs the command line leaves out
type DefaultsConfig struct {
	Material string `mapstructure:"material"`
	Fluid    string `mapstructure:"fluid"`
}

type ReportConfig struct {
	Precision int `mapstructure:"precision"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("defaults.material", "concrete")
	v.SetDefault("defaults.fluid", "water")
	v.SetDefault("report.precision", 4)
}

// InitConf loads the configuration. An empty path searches for goflow.yaml
// in the working directory and $HOME/.goflow; a missing file there is not an
// error. Environment variables prefixed GOFLOW_ override file values, e.g.
// GOFLOW_LOG_LEVEL=debug.
func InitConf(path string) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("goflow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("goflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.goflow")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	Conf = v
	return nil
}

// Load decodes Conf into a Config
func Load() (Config, error) {
	var c Config
	if err := Conf.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.Report.Precision < 0 {
		return Config{}, fmt.Errorf("report.precision must not be negative, got %d", c.Report.Precision)
	}
	return c, nil
}

func init() {
	setDefaults(Conf)
}
