package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/umputun/signalist/pkg/auth"
	"github.com/umputun/signalist/pkg/config"
	"github.com/umputun/signalist/pkg/content"
	"github.com/umputun/signalist/pkg/email"
	"github.com/umputun/signalist/pkg/events"
	"github.com/umputun/signalist/pkg/feed"
	"github.com/umputun/signalist/pkg/llm"
	"github.com/umputun/signalist/pkg/metrics"
	"github.com/umputun/signalist/pkg/notify"
	"github.com/umputun/signalist/pkg/repository"
	"github.com/umputun/signalist/pkg/scheduler"
	"github.com/umputun/signalist/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address (overrides config)"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting signalist version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, cfg.Secrets()...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repos.Close()

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	transport, consumer, closeTransport := makeTransport(cfg.Events)
	defer closeTransport()

	dedup, closeDedup, err := makeDeduplicator(ctx, cfg.Events, repos)
	if err != nil {
		return fmt.Errorf("failed to initialize event dedup: %w", err)
	}
	defer closeDedup()

	dispOpts := []events.Option{events.WithMetrics(rec)}
	if dedup != nil {
		dispOpts = append(dispOpts, events.WithDeduplicator(dedup))
	}
	dispatcher := events.NewDispatcher(transport, dispOpts...)

	generator := llm.NewGenerator(cfg.GetLLMConfig())
	orch := notify.New(notify.Params{
		Generator: generator,
		Sender:    makeSender(cfg.Email, rec),
		News:      makeNewsSource(cfg.News),
		Users:     repos.User,
		Metrics:   rec,
	})
	for _, name := range orch.Events() {
		dispatcher.OnEvent(name, orch.Handle)
	}

	if consumer != nil {
		go func() {
			if err := consumer.Run(ctx, dispatcher); err != nil {
				log.Printf("[ERROR] kafka consumer failed: %v", err)
			}
		}()
	}

	accounts := auth.NewService(auth.Params{
		Provider: auth.NewHTTPProvider(cfg.Auth.URL, cfg.Auth.Timeout),
		Events:   dispatcher,
		Users:    repos.User,
		BaseURL:  cfg.Server.BaseURL,
	})

	srvParams := server.Params{
		Config:        cfg,
		Accounts:      accounts,
		Symbols:       generator,
		Events:        dispatcher,
		Metrics:       metrics.Handler(reg),
		WebhookSecret: cfg.Events.WebhookSecret,
		Version:       revision,
		Debug:         opts.Debug,
	}

	if cfg.Schedule.DailyDigest {
		hour, minute := cfg.DigestTime()
		sched := scheduler.NewScheduler(scheduler.Params{
			Publisher:    dispatcher,
			Settings:     repos.Setting,
			Cleaner:      repos.Event,
			DigestHour:   hour,
			DigestMinute: minute,
		})
		sched.Start(ctx)
		defer sched.Stop()
		srvParams.Digest = sched
	}

	if err := server.New(srvParams).Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	// let in-flight in-process deliveries finish before the database is closed
	if mt, ok := transport.(*events.MemoryTransport); ok {
		mt.Wait()
	}
	return nil
}

// makeTransport returns the configured event transport, the kafka consumer if any and a close function
func makeTransport(cfg config.EventsConfig) (events.Transport, *events.KafkaConsumer, func()) {
	if cfg.Transport != "kafka" {
		log.Printf("[INFO] using in-process event transport")
		return events.NewMemoryTransport(), nil, func() {}
	}

	log.Printf("[INFO] using kafka event transport, brokers %v, topic %s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	producer := events.NewKafkaTransport(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	consumer := events.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	return producer, consumer, func() {
		if err := consumer.Close(); err != nil {
			log.Printf("[WARN] failed to close kafka consumer: %v", err)
		}
		if err := producer.Close(); err != nil {
			log.Printf("[WARN] failed to close kafka producer: %v", err)
		}
	}
}

// makeDeduplicator returns the configured duplicate delivery guard, nil for "none"
func makeDeduplicator(ctx context.Context, cfg config.EventsConfig, repos *repository.Repositories) (events.Deduplicator, func(), error) {
	switch cfg.Dedup {
	case "none":
		log.Printf("[WARN] event dedup is disabled, repeated deliveries run handlers again")
		return nil, func() {}, nil
	case "redis":
		rd, err := events.NewRedisDeduplicator(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.TTL)
		if err != nil {
			return nil, nil, err
		}
		return rd, func() { _ = rd.Close() }, nil
	default:
		return repos.Event, func() {}, nil
	}
}

func makeSender(cfg config.EmailConfig, rec *metrics.Metrics) notify.Sender {
	if cfg.Provider == "smtp" {
		log.Printf("[INFO] sending emails through %s:%d", cfg.Host, cfg.Port)
		return email.NewSMTPSender(email.SMTPParams{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			FromName: cfg.FromName,
			Metrics:  rec,
		})
	}
	log.Printf("[INFO] emails are logged, not sent")
	return &email.LogSender{Metrics: rec}
}

func makeNewsSource(cfg config.NewsConfig) notify.NewsSource {
	params := feed.Params{Feeds: cfg.Feeds, MaxItems: cfg.MaxItems}
	if cfg.ExtractContent {
		params.Extractor = content.NewHTTPExtractor(cfg.Timeout, cfg.UserAgent)
	}
	return feed.NewSource(feed.NewParser(cfg.Timeout, cfg.UserAgent), params)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

