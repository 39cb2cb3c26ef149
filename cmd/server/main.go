package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"antiswear/pkg/api"
	"antiswear/pkg/censor"
	"antiswear/pkg/source"
	"antiswear/pkg/source/postgres"
	"antiswear/pkg/stream"
)

func main() {
	var (
		configPath string
		dictPath   string
		dictURL    string
		httpAddr   string
		logLevel   string
		kafkaAddr  string
		kafkaTopic string
		kafkaBatch int
	)

	flag.StringVar(&configPath, "servconf", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&dictPath, "dict", "", "Path to JSON dictionary file")
	flag.StringVar(&dictURL, "url", "", "URL of JSON dictionary, takes precedence over -dict")
	flag.StringVar(&httpAddr, "http", "", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.StringVar(&kafkaAddr, "kafka", "", "Kafka server address in the form 'host:port'.")
	flag.StringVar(&kafkaTopic, "topic", "", "Kafka topic.")
	flag.IntVar(&kafkaBatch, "batch", 0, "Kafka batch size.")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("[server] failed to load config file %s: %v", configPath, err)
	}

	// Override config with flags if set
	if dictPath != "" {
		cfg.DictPath = dictPath
	}
	if dictURL != "" {
		cfg.DictURL = dictURL
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if kafkaAddr != "" {
		cfg.KafkaAddr = kafkaAddr
	}
	if kafkaTopic != "" {
		cfg.KafkaTopic = kafkaTopic
	}
	if kafkaBatch != 0 {
		cfg.KafkaBatch = kafkaBatch
	}

	if !strings.Contains(cfg.HTTPAddr, ":") {
		log.Warn("[server] use ':' before port number, e.g. ':8080'")
	}
	setLogLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, closeSrc := dictionarySource(ctx, cfg)
	defer closeSrc()

	censor := censor.New()
	loadCtx, loadCancel := context.WithTimeout(ctx, 10*time.Second)
	err = source.Reload(loadCtx, censor, src)
	loadCancel()
	if err != nil {
		log.Fatalf("[server] failed to load dictionary from %v: %v", src, err)
	}

	var kafkaWriter *kafka.Writer
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kafkaWriter = &kafka.Writer{
			Addr:      kafka.TCP(cfg.KafkaAddr),
			Topic:     cfg.KafkaTopic,
			BatchSize: cfg.KafkaBatch,
		}
		defer kafkaWriter.Close()
		err := createTopic(kafkaWriter.Addr.String(), kafkaWriter.Topic)
		if err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}
	} else {
		log.Warnf("[server] kafka was not configured, logs will not be sent to Kafka")
	}

	api, err := api.New(cfg.ServiceName, censor, cfg.Moderation, kafkaWriter)
	if err != nil {
		log.Fatalf("[server] failed to create API: %v", err)
	}

	var wg sync.WaitGroup
	if cfg.KafkaAddr != "" && cfg.CommentsTopic != "" {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  []string{cfg.KafkaAddr},
			Topic:    cfg.CommentsTopic,
			GroupID:  cfg.KafkaGroupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		defer reader.Close()

		verdicts := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaAddr),
			Topic:    cfg.VerdictsTopic,
			Balancer: &kafka.Hash{},
		}
		defer verdicts.Close()
		if err := createTopic(cfg.KafkaAddr, cfg.VerdictsTopic); err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}

		moderator := &stream.Moderator{
			Censor:  censor,
			Reader:  reader,
			Writer:  verdicts,
			Policy:  cfg.Moderation,
			Workers: cfg.NumWorkers,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := moderator.Run(ctx); err != nil {
				log.Errorf("[server] comment moderation stopped: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Infof("[server] starting on port %v", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigChan {
		if sig != syscall.SIGHUP {
			break
		}

		log.Infof("[server] reloading dictionary from %v", src)
		reloadCtx, reloadCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := source.Reload(reloadCtx, censor, src); err != nil {
			log.Errorf("[server] reload failed, keeping current dictionary: %v", err)
		}
		reloadCancel()
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}

	cancel()
	wg.Wait()
}

// dictionarySource picks the configured source. The returned func releases
// resources held by it.
func dictionarySource(ctx context.Context, cfg Config) (source.Source, func()) {
	switch {
	case cfg.UsePostgres:
		conf, err := postgres.ConfigFromEnv(cfg.Postgres)
		if err != nil {
			log.Fatalf("[server] invalid postgres config: %v", err)
		}

		connCtx, connCancel := context.WithTimeout(ctx, 10*time.Second)
		defer connCancel()
		db, err := postgres.New(connCtx, conf.ConString())
		if err != nil {
			log.Fatalf("[server] failed to connect to postgres %v: %v", conf, err)
		}
		if err := db.Ping(connCtx); err != nil {
			log.Fatalf("[server] postgres is not responding: %v", err)
		}

		return db, db.Close
	case cfg.DictURL != "":
		return source.HTTP{URL: cfg.DictURL, Client: &http.Client{Timeout: 10 * time.Second}}, func() {}
	default:
		return source.File{Path: cfg.DictPath}, func() {}
	}
}

func createTopic(broker, topic string) error {
	conn, err := kafka.DialContext(context.Background(), "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}
