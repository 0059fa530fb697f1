package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env            string      `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath    string      `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	MigrationsPath string      `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
	HTTP           HTTPConfig  `yaml:"http"`
	Auth           AuthConfig  `yaml:"auth"`
	Kafka          KafkaConfig `yaml:"kafka"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type AuthConfig struct {
	// Secret is shared with the external identity provider that issues
	// the access tokens.
	Secret string `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
}

type KafkaConfig struct {
	// Brokers left empty disables event publishing.
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"vote-events"`
}

func Load(path string) *Config {
	var config Config
	err := cleanenv.ReadConfig(path, &config)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &config
}
