package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var ErrNotConfigured = errors.New("apiUrl is not configured, run 'wacrm config set --api-url <url>'")

// Config is stored in ~/.wacrm/config.json. WACRM_API_URL, WACRM_WS_URL and
// WACRM_TOKEN override the file.
type Config struct {
	ApiUrl string `mapstructure:"apiUrl"`
	WsUrl  string `mapstructure:"wsUrl"`
	Token  string `mapstructure:"token"`
}

type configStore struct {
	viper *viper.Viper
	path  string
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".wacrm", "config.json")
}

func newConfigStore(path string) (*configStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.BindEnv("apiUrl", "WACRM_API_URL")
	v.BindEnv("wsUrl", "WACRM_WS_URL")
	v.BindEnv("token", "WACRM_TOKEN")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file=%s error=%w", path, err)
	}

	return &configStore{viper: v, path: path}, nil
}

func (c *configStore) Get() (Config, error) {
	var cfg Config
	if err := c.viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Set writes only the non empty values and keeps the rest of the file.
func (c *configStore) Set(update Config) error {
	if update.ApiUrl != "" {
		c.viper.Set("apiUrl", update.ApiUrl)
	}
	if update.WsUrl != "" {
		c.viper.Set("wsUrl", update.WsUrl)
	}
	if update.Token != "" {
		c.viper.Set("token", update.Token)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	return c.viper.WriteConfigAs(c.path)
}
