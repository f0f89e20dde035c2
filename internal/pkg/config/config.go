package config

import (
	"fmt"
	"os"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string `conf:"default::8080" yaml:"port"`
	Debug         bool   `conf:"default:false" yaml:"debug"`
	DBUsername    string `conf:"default:postgres" yaml:"db_username"`
	DBPassword    string `yaml:"db_password"`
	DBHost        string `conf:"default:localhost" yaml:"db_host"`
	DBPort        string `conf:"default:5432" yaml:"db_port"`
	DBName        string `conf:"default:attendance" yaml:"db_name"`
	DisableTLS    bool   `conf:"default:true" yaml:"disable_tls"`
	RedisHost     string `conf:"default:localhost:6379" yaml:"redis_host"`
	RedisPassword string `yaml:"redis_password"`
	BaseUrl       string `yaml:"base_url"`
	PrivateKey    string `conf:"default:./private.pem" yaml:"private_key"`
}

// NewConfig loads configuration from environment/flags first, then lets
// config.yaml override whatever it sets.
func NewConfig() (*Config, error) {
	var c Config

	if err := conf.Parse(os.Args[1:], "ATTENDANCE", &c); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, uerr := conf.Usage("ATTENDANCE", &c)
			if uerr != nil {
				return nil, errors.Wrap(uerr, "generating config usage")
			}
			fmt.Println(usage)
			os.Exit(0)
		}
		return nil, errors.Wrap(err, "parsing config")
	}

	if yamlFile, err := os.ReadFile("config.yaml"); err == nil {
		if err = yaml.Unmarshal(yamlFile, &c); err != nil {
			return nil, errors.Wrap(err, "parsing config.yaml")
		}
	}

	if c.DBUsername == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	return &c, nil
}
