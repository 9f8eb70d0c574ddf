package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/leadscout/leadscout/pkg/config"
	"github.com/leadscout/leadscout/pkg/feed"
	"github.com/leadscout/leadscout/pkg/llm"
	"github.com/leadscout/leadscout/pkg/monitor"
	"github.com/leadscout/leadscout/pkg/notify"
	"github.com/leadscout/leadscout/pkg/repository"
	"github.com/leadscout/leadscout/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Once   bool   `long:"once" description:"run a single poll cycle and exit"`

	// Common options
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

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()
	lgr.Printf("[INFO] shutdown complete")
}

// run wires all components and blocks until the context is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// credentials never reach the log output
	secrets := append([]string{}, cfg.LLM.APIKeys...)
	if cfg.SMTP.Password != "" {
		secrets = append(secrets, cfg.SMTP.Password)
	}
	setupLog(opts.Debug, opts.NoColor, secrets...)

	lgr.Printf("[INFO] starting leadscout version %s", revision)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] database close error: %v", err)
		}
	}()

	repos.Feed.SetFailurePolicy(cfg.Monitor.MaxErrorStreak, cfg.Monitor.Suspension)

	fetcher := feed.NewFetcher(feed.Config{
		BaseURL:       cfg.Source.BaseURL,
		MaxItems:      cfg.Source.Items,
		Timeout:       cfg.Source.Timeout,
		ClientIDs:     cfg.Source.ClientIDs,
		BlockCooldown: cfg.Source.BlockCooldown,
	})

	scorer := llm.NewScorer(llm.Config{
		Endpoint:    cfg.LLM.Endpoint,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		BatchSize:   cfg.LLM.BatchSize,
		Timeout:     cfg.LLM.Timeout,
		APIKeys:     cfg.LLM.APIKeys,
		KeyCooldown: cfg.LLM.KeyCooldown,
	})

	params := monitor.Params{
		FeedStore:        repos.Feed,
		Registry:         repos.Consumer,
		LeadStore:        repos.Lead,
		HeartbeatStore:   repos.Heartbeat,
		Fetcher:          fetcher,
		Scorer:           scorer,
		BaseDelay:        cfg.Source.BaseDelay,
		Jitter:           cfg.Source.Jitter,
		StoreThreshold:   cfg.Monitor.StoreThreshold,
		NotifyThreshold:  cfg.Monitor.NotifyThreshold,
		MaxScoredPerFeed: cfg.Monitor.MaxScoredPerFeed,
		HealthFailRate:   cfg.Schedule.HealthFailRate,
		ScoreWorkers:     cfg.Monitor.ScoreWorkers,
	}
	if notifier := notify.NewEmailNotifier(notify.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		StartTLS: cfg.SMTP.StartTLS,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	}); notifier != nil {
		params.Notifier = notifier
	}
	mon := monitor.New(params)

	if opts.Once {
		return mon.RunCycle(ctx)
	}

	srv := server.New(server.Params{
		Feeds:     repos.Feed,
		Leads:     repos.Lead,
		Heartbeat: repos.Heartbeat,
		Listen:    cfg.Server.Listen,
		Timeout:   cfg.Server.Timeout,
		Version:   revision,
		Debug:     opts.Debug,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return mon.Run(gctx, cfg.Schedule.CycleInterval) })
	g.Go(func() error { return srv.Run(gctx) })
	return g.Wait()
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
