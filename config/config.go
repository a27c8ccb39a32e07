// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the loader.
type Config struct {
	AppName  string `envconfig:"APP_NAME" default:"laurel-loader"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// InputFile is the BioC collection to load; a positional CLI argument
	// overrides it.
	InputFile string `envconfig:"BIOC_INPUT_FILE" default:"data/xml/sample_litcovid2pubtator.xml"`

	GraphDBHost     string `envconfig:"GRAPH_DB_HOST" default:"localhost"`
	GraphDBPort     int    `envconfig:"GRAPH_DB_PORT" default:"7687"`
	GraphDBUsername string `envconfig:"GRAPH_DB_USERNAME"`
	GraphDBPassword string `envconfig:"GRAPH_DB_PASSWORD"`

	KafkaEnabled      bool          `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers      []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic        string        `envconfig:"KAFKA_TOPIC" default:"article-load-events"`
	KafkaBatchSize    int           `envconfig:"KAFKA_BATCH_SIZE" default:"100"`
	KafkaBatchTimeout time.Duration `envconfig:"KAFKA_BATCH_TIMEOUT" default:"1s"`
	KafkaRequiredAcks int           `envconfig:"KAFKA_REQUIRED_ACKS" default:"-1"`
	KafkaCompression  string        `envconfig:"KAFKA_COMPRESSION" default:"snappy"`
}

// Load reads the configuration from the environment. A missing .env file is
// fine; a malformed environment is not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	return &cfg, nil
}
