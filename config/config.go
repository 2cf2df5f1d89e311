package config

import (
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/HavvokLab/contact-sync/setting"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	once   sync.Once
	config Config
)

// envKeys are readable from the environment even when config.yaml omits them.
var envKeys = []string{
	"elasticsearch.host",
	"elasticsearch.username",
	"elasticsearch.password",
	"elasticsearch.index",
	"elasticsearch.age_strategy",
	"hubspot.url",
	"hubspot.token",
	"hubspot.page_limit",
	"hubspot.page_delay",
	"hubspot.timeout",
	"server.port",
	"database.path",
	"crontab.sync_time",
}

func GetConfig() Config {
	once.Do(func() {
		cfg, err := Load(".")
		if err != nil {
			log.Panic().Err(err).Msg("failed to load config")
		}
		config = *cfg
	})

	return config
}

// Load reads config.yaml from the given directories, applies environment
// overrides and fills everything left empty with defaults.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Warn().Msg("config file not found, using environment and defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Default() Config {
	return Config{
		Elastic: ElasticsearchConfig{
			Host:        "http://localhost:9200",
			Index:       setting.UsersIndex,
			AgeStrategy: setting.AgeStrategyRuntime,
		},
		Hubspot: HubspotConfig{
			URL:       setting.HubspotDefaultURL,
			PageLimit: setting.HubspotDefaultPageLimit,
			PageDelay: setting.HubspotPageDelay,
			Timeout:   setting.HubspotFetchTimeout,
		},
		Server: ServerConfig{
			Port: 3000,
		},
		Database: DatabaseConfig{
			Path: "database.db",
		},
		Crontab: CrontabConfig{
			SyncTime: setting.CrontabSyncTime,
		},
	}
}
