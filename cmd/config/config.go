package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Siddaarth-Babu/mooc/pkg/api"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
)

var cfgFile string

// InitConfig wires the config file, a local .env and MOOC_ environment
// variables into viper.
func InitConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "mooc"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MOOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api_url", "http://localhost:8000")
	viper.SetDefault("request_timeout", "15s")
	viper.SetDefault("retry_max", 3)
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "mooc"))
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("course", "")
	viper.SetDefault("detail_concurrency", 4)

	// The file is optional; defaults and env cover a fresh install.
	_ = viper.ReadInConfig()
}

// Load decodes the merged configuration.
func Load() (service.Config, error) {
	var cfg service.Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := viper.Unmarshal(&cfg, hook); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	return cfg, nil
}

// ConfigureLogger applies the configured level. Unknown levels fall back
// to warn.
func ConfigureLogger(logger *logrus.Logger, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	logger.SetLevel(lvl)
}

// InitService opens the session store and builds the service. The returned
// func releases the store.
func InitService(cfg service.Config, logger logrus.FieldLogger) (*service.Service, func(), error) {
	store, err := session.OpenStore(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}
	sessions, err := session.NewManager(store)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load session: %w", err)
	}

	client, err := api.New(api.Options{
		BaseURL:  cfg.APIURL,
		Timeout:  cfg.RequestTimeout,
		RetryMax: cfg.RetryMax,
		Tokens:   sessions,
		Logger:   logger,
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	svc := service.New(cfg, client, sessions, logger)
	return svc, func() { store.Close() }, nil
}

// AddGlobalFlags registers the persistent flags and binds the overrides to
// their config keys.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mooc/config.yaml)")
	flags.StringP("course", "C", "", "course id (overrides the configured course)")
	flags.String("api-url", "", "backend base URL")

	_ = viper.BindPFlag("course", flags.Lookup("course"))
	_ = viper.BindPFlag("api_url", flags.Lookup("api-url"))
}
