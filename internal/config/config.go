package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gptcommit/internal/llm"
	"gptcommit/internal/prompt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName   = "gptcommit"
	envPrefix = "GPTCOMMIT"
)

type General struct {
	Language    string `mapstructure:"language" yaml:"language"`
	Emoji       bool   `mapstructure:"emoji" yaml:"emoji"`
	Description bool   `mapstructure:"description" yaml:"description"`
}

type ProviderConfig struct {
	APIKey         string  `mapstructure:"apikey" yaml:"apikey"`
	Model          string  `mapstructure:"model" yaml:"model"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature,omitempty"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens,omitempty"`
	CustomEndpoint string  `mapstructure:"custom_endpoint" yaml:"custom_endpoint,omitempty"`
}

type Config struct {
	DefaultProvider string                    `mapstructure:"default_provider" yaml:"default_provider"`
	Delimiter       string                    `mapstructure:"delimiter" yaml:"delimiter"`
	AutoAdd         bool                      `mapstructure:"auto_add" yaml:"auto_add"`
	AutoPush        bool                      `mapstructure:"auto_push" yaml:"auto_push"`
	General         General                   `mapstructure:"general" yaml:"general"`
	Providers       map[string]ProviderConfig `mapstructure:"providers" yaml:"providers"`
	Examples        []prompt.Exchange         `mapstructure:"examples" yaml:"examples,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultProvider: llm.ProviderOpenAI,
		General:         General{Language: prompt.DefaultLanguage},
		Providers:       make(map[string]ProviderConfig),
	}
}

func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func resolvePath(configPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return GetConfigPath()
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	d := Default()
	v.SetDefault("default_provider", d.DefaultProvider)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("auto_add", d.AutoAdd)
	v.SetDefault("auto_push", d.AutoPush)
	v.SetDefault("general.language", d.General.Language)
	v.SetDefault("general.emoji", d.General.Emoji)
	v.SetDefault("general.description", d.General.Description)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config at configPath, or at the default location when
// configPath is empty. A missing default file yields Default with
// environment overrides applied; a missing explicit file is an error.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	configPath, err := resolvePath(configPath)
	if err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file not found at %s, run 'gptcommit config init' to create one", configPath)
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	return &cfg, nil
}

// GetProvider returns the settings for name, or for the default provider when
// name is empty. A registered provider without a config entry yields zero
// settings.
func (c *Config) GetProvider(name string) (ProviderConfig, error) {
	if name == "" {
		name = c.DefaultProvider
	}

	if provider, exists := c.Providers[name]; exists {
		return provider, nil
	}
	if _, known := llm.GetProviderInfo(name); known {
		return ProviderConfig{}, nil
	}
	return ProviderConfig{}, fmt.Errorf("provider '%s' not found in config", name)
}

func (c *Config) GetDefaultProvider() (ProviderConfig, error) {
	return c.GetProvider(c.DefaultProvider)
}

// APIKey returns the configured key for name, falling back to the
// <NAME>_API_KEY environment variable.
func (c *Config) APIKey(name string) string {
	if name == "" {
		name = c.DefaultProvider
	}
	if p, ok := c.Providers[name]; ok && p.APIKey != "" {
		return p.APIKey
	}
	return os.Getenv(strings.ToUpper(name) + "_API_KEY")
}

// GeneratorOptions maps the config for provider name onto llm.Options.
func (c *Config) GeneratorOptions(name string) (llm.Options, error) {
	p, err := c.GetProvider(name)
	if err != nil {
		return llm.Options{}, err
	}
	return llm.Options{
		Model:       p.Model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		Endpoint:    p.CustomEndpoint,
		Style: prompt.Style{
			Language:    c.General.Language,
			Emoji:       c.General.Emoji,
			Description: c.General.Description,
		},
		Examples: c.Examples,
	}, nil
}

const defaultConfig = `# gptcommit configuration
# Run 'gptcommit' to configure via TUI

default_provider: openai
delimiter: ""
auto_add: false
auto_push: false

general:
  language: english
  emoji: false
  description: false

providers: {}
`

// Init writes a starter config file and returns its path.
func Init(configPath string) (string, error) {
	configPath, err := resolvePath(configPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configPath, nil
}

// Save writes cfg to configPath, or to the default location.
func Save(configPath string, cfg *Config) error {
	configPath, err := resolvePath(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("default_provider", cfg.DefaultProvider)
	v.Set("delimiter", cfg.Delimiter)
	v.Set("auto_add", cfg.AutoAdd)
	v.Set("auto_push", cfg.AutoPush)
	v.Set("general", map[string]interface{}{
		"language":    cfg.General.Language,
		"emoji":       cfg.General.Emoji,
		"description": cfg.General.Description,
	})
	providers := make(map[string]interface{}, len(cfg.Providers))
	for name, p := range cfg.Providers {
		providers[name] = map[string]interface{}{
			"apikey":          p.APIKey,
			"model":           p.Model,
			"temperature":     p.Temperature,
			"max_tokens":      p.MaxTokens,
			"custom_endpoint": p.CustomEndpoint,
		}
	}
	v.Set("providers", providers)
	if len(cfg.Examples) > 0 {
		examples := make([]map[string]interface{}, len(cfg.Examples))
		for i, ex := range cfg.Examples {
			examples[i] = map[string]interface{}{"diff": ex.Diff, "message": ex.Message}
		}
		v.Set("examples", examples)
	}

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Show returns the effective configuration as YAML with API keys masked.
func Show(configPath string) (*Config, string, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	masked := *cfg
	masked.Providers = make(map[string]ProviderConfig, len(cfg.Providers))
	for name, p := range cfg.Providers {
		p.APIKey = maskKey(p.APIKey)
		masked.Providers[name] = p
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render config: %w", err)
	}
	return cfg, string(data), nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// Set updates one dotted key in the config file. value is parsed as a YAML
// scalar so "true" and "0.5" keep their types.
func Set(configPath, key, value string) error {
	configPath, err := resolvePath(configPath)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var parsed interface{}
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil || parsed == nil {
		parsed = value
	}
	v.Set(key, parsed)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
