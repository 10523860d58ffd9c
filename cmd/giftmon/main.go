package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/rcreative/giftmon/pkg/config"
	"github.com/rcreative/giftmon/pkg/domain"
	"github.com/rcreative/giftmon/pkg/feed"
	"github.com/rcreative/giftmon/pkg/monitor"
	"github.com/rcreative/giftmon/pkg/repository"
	"github.com/rcreative/giftmon/pkg/scheduler"
	"github.com/rcreative/giftmon/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

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

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Printf("[ERROR] failed to load config: %v", err)
		os.Exit(1)
	}

	var secrets []string
	if cfg.Feed.Token != "" {
		secrets = append(secrets, cfg.Feed.Token)
	}
	setupLog(opts.Debug, secrets...)

	log.Printf("[INFO] starting giftmon version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, cfg, opts.Debug)
	cancel()

	if err != nil {
		log.Printf("[ERROR] giftmon failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires dependencies and blocks until ctx is canceled
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	store, err := repository.New(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	client := feed.NewClient(feed.Config{
		Endpoint:      cfg.Feed.Endpoint,
		Token:         cfg.Feed.Token,
		PageSize:      cfg.Feed.PageSize,
		Timeout:       cfg.Feed.Timeout,
		RetryAttempts: cfg.Feed.RetryAttempts,
		RetryDelay:    cfg.Feed.RetryDelay,
		RetryMaxDelay: cfg.Feed.RetryMaxDelay,
	})

	mon := monitor.New(client, store.Seen, monitor.HandlerFunc(logGift))
	sched := scheduler.New(mon)

	if cfg.Schedule.FetchOnStart {
		if err := mon.Fetch(ctx); err != nil {
			log.Printf("[WARN] initial fetch failed: %v", err)
		}
	}

	sched.Start(ctx, cfg.Schedule.FetchInterval)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Server.Enabled {
		srv := server.New(server.Config{
			Listen:   cfg.Server.Listen,
			Timeout:  cfg.Server.Timeout,
			Interval: cfg.Schedule.FetchInterval,
			Version:  revision,
			Debug:    debug,
		}, mon, sched, store.Seen)
		g.Go(func() error { return srv.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		sched.Stop()
		return nil
	})

	return g.Wait()
}

// logGift is the default gift handler, it reports each new gift to the log
func logGift(_ context.Context, ev domain.GiftEvent) error {
	amount := color.New(color.FgGreen).Sprint(ev.DisplayAmount)
	supporter := color.New(color.FgCyan).Sprint(ev.Supporter)
	lgr.Printf("[INFO] gift %s from %s: %q", amount, supporter, ev.Message)
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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
