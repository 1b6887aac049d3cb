package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env:"GOLFINBOX_ENV" env-default:"local"`
	Postgres struct {
		Enabled  bool   `yaml:"enabled" env:"GOLFINBOX_POSTGRES_ENABLED" env-default:"false"`
		DSN      string `yaml:"dsn" env:"GOLFINBOX_POSTGRES_DSN" env-default:""`
		MaxConns int32  `yaml:"max_conns" env-default:"4"`

		// SkipMigrate leaves the schema to an external migration run.
		SkipMigrate bool `yaml:"skip_migrate" env-default:"false"`
	} `yaml:"postgres"`
	Inbox struct {
		// SeparateMarkReadWrites runs the two mark-read updates outside a transaction.
		SeparateMarkReadWrites bool `yaml:"separate_mark_read_writes" env-default:"false"`
		MaxPageSize            int  `yaml:"max_page_size" env-default:"100"`
	} `yaml:"inbox"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env:"GOLFINBOX_API_KEY" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance, err = Load(path)
		if err != nil {
			log.Fatal(err)
		}
	})
	return instance
}

// Load reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("%s; %s", err, desc)
	}
	return conf, nil
}
