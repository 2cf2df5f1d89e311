package config

import "time"

type Config struct {
	Elastic  ElasticsearchConfig `mapstructure:"elasticsearch"`
	Hubspot  HubspotConfig       `mapstructure:"hubspot"`
	Server   ServerConfig        `mapstructure:"server"`
	Database DatabaseConfig      `mapstructure:"database"`
	Crontab  CrontabConfig       `mapstructure:"crontab"`
	SnmpList []SnmpConfig        `mapstructure:"snmp_list"`
}

type ElasticsearchConfig struct {
	Host        string `mapstructure:"host"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	Index       string `mapstructure:"index"`
	AgeStrategy string `mapstructure:"age_strategy"`
}

type HubspotConfig struct {
	URL       string        `mapstructure:"url"`
	Token     string        `mapstructure:"token"`
	PageLimit int           `mapstructure:"page_limit"`
	PageDelay time.Duration `mapstructure:"page_delay"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type CrontabConfig struct {
	SyncTime string `mapstructure:"sync_time"`
}

type SnmpConfig struct {
	AgentHost  string `mapstructure:"agent_host"`
	TargetHost string `mapstructure:"target_host"`
	TargetPort int    `mapstructure:"target_port"`
}
