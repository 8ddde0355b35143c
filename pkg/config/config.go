package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel   string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTP       HTTP       `yaml:"http"`
	Postgres   PG         `yaml:"postgres"`
	Redis      Redis      `yaml:"redis"`
	Kafka      Kafka      `yaml:"kafka"`
	Services   Services   `yaml:"services"`
	Downstream Downstream `yaml:"downstream"`
	Limiter    Limiter    `yaml:"limiter"`
	Enrichment Enrichment `yaml:"enrichment"`
}

type HTTP struct {
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:":3000"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
}

type PG struct {
	URL string `yaml:"url" env:"DB_URL"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID"`
}

type Services struct {
	CustomerURL string `yaml:"customer_url" env:"CUSTOMER_SERVICE_URL" env-default:"http://localhost:8002"`
	CatalogURL  string `yaml:"catalog_url" env:"CATALOG_SERVICE_URL" env-default:"http://localhost:8001"`
}

// Downstream holds the settings applied to every outgoing call to another service.
type Downstream struct {
	Timeout            time.Duration `yaml:"timeout" env:"DOWNSTREAM_TIMEOUT" env-default:"2s"`
	Retries            uint64        `yaml:"retries" env:"DOWNSTREAM_RETRIES" env-default:"2"`
	BreakerMaxRequests uint32        `yaml:"breaker_max_requests" env-default:"3"`
	BreakerInterval    time.Duration `yaml:"breaker_interval" env-default:"5s"`
	BreakerTimeout     time.Duration `yaml:"breaker_timeout" env-default:"10s"`
}

type Limiter struct {
	Max        int           `yaml:"max" env:"LIMITER_MAX" env-default:"20"`
	Expiration time.Duration `yaml:"expiration" env:"LIMITER_EXPIRATION" env-default:"5s"`
}

type Enrichment struct {
	Concurrency int `yaml:"concurrency" env:"ENRICHMENT_CONCURRENCY" env-default:"8"`
}

func MustLoad() *Config {
	configPath := utils.ParseWithFallback("CONFIG_PATH", "./config/local.yaml")

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	return cfg
}

// Load reads the YAML file at path and applies environment overrides.
// A missing file is not an error: the config is then built from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("config file %s does not exist, reading environment only", path)

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("error reading env: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	return &cfg, nil
}
