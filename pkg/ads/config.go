package ads

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

const (
	defaultEndpoint   = "https://googleads.googleapis.com"
	defaultAPIVersion = "v22"
)

// Config carries the credentials and endpoint settings for the ads platform.
type Config struct {
	DeveloperToken  string `mapstructure:"developer_token"`
	AccessToken     string `mapstructure:"access_token"`
	LoginCustomerID string `mapstructure:"login_customer_id"`
	Endpoint        string `mapstructure:"endpoint"`
	APIVersion      string `mapstructure:"api_version"`
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
}

// LoadConfig loads client configuration from the specified profile path.
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse ads config: %w", err)
	}
	if config.DeveloperToken == "" {
		return nil, fmt.Errorf("profile %s is missing developer_token", profilePath)
	}

	config.applyDefaults()
	return &config, nil
}

// Registry reads named credential profiles from an INI file, one section per
// account.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (*Config, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*Config, error) {
	section := cr.cfg.Section(profile)
	if section == nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	config := &Config{
		DeveloperToken:  section.Key("developer_token").String(),
		AccessToken:     section.Key("access_token").String(),
		LoginCustomerID: section.Key("login_customer_id").String(),
		Endpoint:        section.Key("endpoint").String(),
		APIVersion:      section.Key("api_version").String(),
	}
	config.applyDefaults()
	return config, nil
}
