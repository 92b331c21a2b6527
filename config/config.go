package config

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Modes lists every mode with a preset, in a stable order.
func Modes() []Mode {
	return []Mode{ModeDevelopment, ModeProduction}
}

type AuthConfig struct {
	Domain      string `mapstructure:"domain" json:"domain" yaml:"domain"`
	Audience    string `mapstructure:"audience" json:"audience" yaml:"audience"`
	ClientID    string `mapstructure:"client_id" json:"clientId" yaml:"clientId"`
	CallbackURL string `mapstructure:"callback_url" json:"callbackUrl" yaml:"callbackUrl"`
}

// EnvironmentConfig is the record the front-end reads at startup. It holds
// only value fields, so copies never share state.
type EnvironmentConfig struct {
	Production   bool       `mapstructure:"production" json:"production" yaml:"production"`
	APIServerURL string     `mapstructure:"api_server_url" json:"apiServerUrl" yaml:"apiServerUrl"`
	Auth         AuthConfig `mapstructure:"auth" json:"auth" yaml:"auth"`
}

const (
	auth0Domain   = "dev-vu.us.auth0.com"
	auth0Audience = "coffee-shop-backend"
	auth0ClientID = "8JbmI4rqh4lyHQ7k1D0Zm5gRhjOGWuFQ"
)

func preset(mode Mode) (EnvironmentConfig, bool) {
	switch mode {
	case ModeDevelopment:
		return EnvironmentConfig{
			Production:   false,
			APIServerURL: "http://127.0.0.1:5000",
			Auth: AuthConfig{
				Domain:      auth0Domain,
				Audience:    auth0Audience,
				ClientID:    auth0ClientID,
				CallbackURL: "http://localhost:8100",
			},
		}, true
	case ModeProduction:
		return EnvironmentConfig{
			Production:   true,
			APIServerURL: "https://coffee-shop-backend.herokuapp.com",
			Auth: AuthConfig{
				Domain:      auth0Domain,
				Audience:    auth0Audience,
				ClientID:    auth0ClientID,
				CallbackURL: "https://coffee-shop-frontend.herokuapp.com",
			},
		}, true
	default:
		return EnvironmentConfig{}, false
	}
}

// ParseMode accepts the canonical mode names and the short dev/prod aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeProduction, nil
	default:
		return "", newConfigurationError(Mode(s), ErrUnknownMode)
	}
}

// Get returns the validated preset for mode. It performs no I/O.
func Get(mode Mode) (EnvironmentConfig, error) {
	return Load(mode, "")
}

// MustGet is like Get but panics when the preset is unusable.
func MustGet(mode Mode) EnvironmentConfig {
	cfg, err := Get(mode)
	if err != nil {
		panic(err)
	}
	return cfg
}

var ErrUnknownKey = errors.New("unknown key")

// fileKeys maps every key an override file may use to its canonical key.
// Viper lowercases keys, so the JSON field names arrive as e.g. "apiserverurl".
var fileKeys = map[string]string{
	"production":        "production",
	"api_server_url":    "api_server_url",
	"apiserverurl":      "api_server_url",
	"auth.domain":       "auth.domain",
	"auth.audience":     "auth.audience",
	"auth.client_id":    "auth.client_id",
	"auth.clientid":     "auth.client_id",
	"auth.callback_url": "auth.callback_url",
	"auth.callbackurl":  "auth.callback_url",
}

// Load resolves the configuration for mode. When configFile is set its keys
// override the preset; the file type follows its extension. Keys may be
// written in snake_case or with the JSON field names, so rendered output can be
// fed back in. Any other key is rejected.
func Load(mode Mode, configFile string) (EnvironmentConfig, error) {
	base, ok := preset(mode)
	if !ok {
		return EnvironmentConfig{}, newConfigurationError(mode, ErrUnknownMode)
	}

	v := viper.New()
	v.SetDefault("production", base.Production)
	v.SetDefault("api_server_url", base.APIServerURL)
	v.SetDefault("auth.domain", base.Auth.Domain)
	v.SetDefault("auth.audience", base.Auth.Audience)
	v.SetDefault("auth.client_id", base.Auth.ClientID)
	v.SetDefault("auth.callback_url", base.Auth.CallbackURL)

	if configFile != "" {
		if err := mergeFile(v, configFile); err != nil {
			return EnvironmentConfig{}, newConfigurationError(mode, err)
		}
	}

	var cfg EnvironmentConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	}); err != nil {
		return EnvironmentConfig{}, newConfigurationError(mode, fmt.Errorf("decode: %w", err))
	}

	if err := cfg.validateFor(mode); err != nil {
		return EnvironmentConfig{}, newConfigurationError(mode, err)
	}

	return cfg, nil
}

func mergeFile(v *viper.Viper, configFile string) error {
	fv := viper.New()
	fv.SetConfigFile(configFile)
	if err := fv.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", configFile, err)
	}

	for _, key := range fv.AllKeys() {
		canonical, ok := fileKeys[key]
		if !ok {
			return fmt.Errorf("%s: %w %q", configFile, ErrUnknownKey, key)
		}
		v.Set(canonical, fv.Get(key))
	}

	return nil
}

func (c EnvironmentConfig) validateFor(mode Mode) error {
	err := c.Validate()

	if c.Production != (mode == ModeProduction) {
		var errs validation.Errors
		if !errors.As(err, &errs) {
			if err != nil {
				return err
			}
			errs = validation.Errors{}
		}
		errs["production"] = validation.NewError("validation_mode_mismatch",
			fmt.Sprintf("must be %t in %s mode", mode == ModeProduction, mode))
		return errs
	}

	return err
}
