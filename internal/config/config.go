package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ogulcanaydogan/budget-intake/pkg/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all intake configuration.
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Prompt  PromptConfig  `mapstructure:"prompt" yaml:"prompt"`
	Journal JournalConfig `mapstructure:"journal" yaml:"journal"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig defines where and how rows are written.
type OutputConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	CRLF      bool   `mapstructure:"crlf" yaml:"crlf"`
	Preflight bool   `mapstructure:"preflight" yaml:"preflight"`
}

// PromptConfig defines input validation.
type PromptConfig struct {
	Sentinel   string `mapstructure:"sentinel" yaml:"sentinel"`
	NumberKind string `mapstructure:"number_kind" yaml:"number_kind"`
}

// JournalConfig defines the run journal database.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Kind returns the configured number kind. Load has already validated it.
func (c *Config) Kind() model.NumberKind {
	return model.NumberKind(c.Prompt.NumberKind)
}

// Load reads configuration from a .env file, the config file and
// environment variables, in increasing order of precedence.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(filepath.Join(home, ".intake"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("output.dir", "data")
	v.SetDefault("output.crlf", false)
	v.SetDefault("output.preflight", true)
	v.SetDefault("prompt.sentinel", "done")
	v.SetDefault("prompt.number_kind", string(model.KindReal))
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", filepath.Join(home, ".intake", "journal.db"))
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := model.ParseNumberKind(c.Prompt.NumberKind); err != nil {
		return fmt.Errorf("prompt.number_kind: %w", err)
	}
	if c.Prompt.Sentinel == "" {
		return errors.New("prompt.sentinel must not be empty")
	}
	if strings.ContainsAny(c.Prompt.Sentinel, "\r\n") {
		return errors.New("prompt.sentinel must be a single line")
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir must not be empty")
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path must be set when the journal is enabled")
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
