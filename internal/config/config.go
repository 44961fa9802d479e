package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type EngineConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	EngineDB       `yaml:"engine_db"`
	LogConfig      `yaml:"log_config"`
	PaymentService `yaml:"payment-service"`
	KafkaService   `yaml:"kafka-service"`
	Escrow         `yaml:"escrow"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type EngineDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type PaymentService struct {
	Address        string `yaml:"address"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Escrow struct {
	PlatformFeeBps      int64 `yaml:"platform_fee_bps"`
	PayoutMaxAttempts   int   `yaml:"payout_max_attempts"`
	PayoutRetrySeconds  int   `yaml:"payout_retry_seconds"`
	StuckPendingSeconds int64 `yaml:"stuck_pending_seconds"`
}

func MustLoad() *EngineConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ENGINE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ENGINE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EngineConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
