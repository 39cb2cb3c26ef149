package main

import (
	"errors"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"antiswear/pkg/moderation"
	"antiswear/pkg/source/postgres"
)

type Config struct {
	ServiceName string `toml:"serviceName"`

	// Dictionary sources, tried in order: Postgres, URL, file.
	DictPath    string          `toml:"dictPath"`
	DictURL     string          `toml:"dictURL"`
	UsePostgres bool            `toml:"usePostgres"`
	Postgres    postgres.Config `toml:"postgres"`

	Moderation moderation.Policy `toml:"moderation"`

	HTTPAddr   string `toml:"httpAddr"`
	LogLevel   string `toml:"logLevel"`
	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`

	// Comment moderation stream, disabled when CommentsTopic is empty.
	CommentsTopic string `toml:"commentsTopic"`
	VerdictsTopic string `toml:"verdictsTopic"`
	KafkaGroupID  string `toml:"kafkaGroupID"`
	NumWorkers    int    `toml:"numWorkers"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceName: "antiswear",
		HTTPAddr:    ":8055",
		LogLevel:    "info",
		NumWorkers:  4,
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

var (
	errNoVerdictsTopic = errors.New("commentsTopic is set but verdictsTopic is empty")
	errNoGroupID       = errors.New("commentsTopic is set but kafkaGroupID is empty")
)

// validate rejects a moderation stream that could not publish or commit.
func (c Config) validate() error {
	if c.CommentsTopic == "" {
		return nil
	}
	if c.VerdictsTopic == "" {
		return errNoVerdictsTopic
	}
	if c.KafkaGroupID == "" {
		return errNoGroupID
	}
	return nil
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("[server] unknown log level %q, keeping %s", level, log.GetLevel())
	}
}
