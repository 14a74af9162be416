package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Listen struct {
	BindIp string `yaml:"bind_ip" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env-default:"8080"`
}

type MongoConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     string `yaml:"port" env-default:"27017"`
	User     string `yaml:"user" env-default:""`
	Password string `yaml:"password" env-default:""`
	Database string `yaml:"database" env-default:"launchlist"`
}

// IdentityConfig points at the identity backend's MySQL replica. Read-only:
// the service never writes there, accounts are created via the admin API.
type IdentityConfig struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	HostName string `yaml:"host" env-default:"localhost"`
	Port     string `yaml:"port" env-default:"3306"`
	UserName string `yaml:"user" env-default:""`
	Password string `yaml:"password" env-default:""`
	Database string `yaml:"database" env-default:"auth"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env-default:""`
	Port     string `yaml:"port" env-default:"587"`
	Username string `yaml:"username" env-default:""`
	Password string `yaml:"password" env-default:""`
	Sender   string `yaml:"sender" env-default:""`
}

type ProvisionerConfig struct {
	BaseURL string `yaml:"base_url" env-default:""`
	APIKey  string `yaml:"api_key" env-default:""`
}

type DeployConfig struct {
	Enabled bool   `yaml:"enabled" env-default:"false"`
	BaseURL string `yaml:"base_url" env-default:"https://api.netlify.com"`
	APIKey  string `yaml:"api_key" env-default:""`
	SiteID  string `yaml:"site_id" env-default:""`
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled" env-default:"false"`
	ApiKey  string `yaml:"api_key" env-default:""`
}

type WaitlistConfig struct {
	InitialCapacity int    `yaml:"initial_capacity" env-default:"300"`
	DailyDecrement  int    `yaml:"daily_decrement" env-default:"50"`
	SignupURL       string `yaml:"signup_url" env-default:""`
}

type Config struct {
	Env         string            `yaml:"env" env-default:"local"`
	Listen      Listen            `yaml:"listen"`
	Mongo       MongoConfig       `yaml:"mongo"`
	Identity    IdentityConfig    `yaml:"identity"`
	SMTP        SMTPConfig        `yaml:"smtp"`
	Provisioner ProvisionerConfig `yaml:"provisioner"`
	Deploy      DeployConfig      `yaml:"deploy"`
	Telegram    TelegramConfig    `yaml:"telegram"`
	Waitlist    WaitlistConfig    `yaml:"waitlist"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("config: %s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
