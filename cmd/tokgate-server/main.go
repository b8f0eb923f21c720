package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/yndnr/tokgate/internal/core/service"
	"github.com/yndnr/tokgate/internal/infra/buildinfo"
	"github.com/yndnr/tokgate/internal/infra/confloader"
	"github.com/yndnr/tokgate/internal/infra/notify"
	"github.com/yndnr/tokgate/internal/infra/shutdown"
	"github.com/yndnr/tokgate/internal/server/config"
	"github.com/yndnr/tokgate/internal/server/httpserver"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/internal/telemetry/metric"
	"github.com/yndnr/tokgate/pkg/crypto/keystore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "path to configuration file")
		showVersion = flag.Bool("version", false, "show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("tokgate-server", buildinfo.String())
		return nil
	}

	cfg, loader, err := config.Load(*configFile, nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting tokgate-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)
	log.Debug("effective configuration", "config", config.Sanitize(cfg))

	clock := clockwork.NewRealClock()
	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout, log)

	keys, err := keystore.New()
	if err != nil {
		if errors.Is(err, keystore.ErrCryptoUnavailable) {
			log.Error("secure random source unavailable, refusing to start", "error", err)
		}
		return fmt.Errorf("init keystore: %w", err)
	}
	defer keys.Destroy()
	// Registered first so it runs last: in-flight requests still need the key.
	shutdownHandler.OnShutdown("keystore", func(context.Context) error {
		keys.Destroy()
		return nil
	})
	log.Info("token key generated", "key_fp", keys.Fingerprint())

	var metrics *metric.Registry
	if cfg.Metrics.Enabled {
		metrics = metric.NewRegistry()
	}

	tokenCfg, err := cfg.TokenServiceConfig()
	if err != nil {
		return fmt.Errorf("token config: %w", err)
	}
	tokenCfg.Clock = clock
	tokenCfg.Logger = log
	tokenCfg.Metrics = metrics
	tokens, err := service.NewTokenService(keys, tokenCfg)
	if err != nil {
		return fmt.Errorf("init token service: %w", err)
	}

	notifier, err := notify.New(cfg.NotifyConfig(), notify.Options{
		Validity: tokens.Expiry(),
		Clock:    clock,
		Logger:   log,
		Metrics:  metrics,
	})
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	auth := service.NewAuthService(tokens, notifier, &service.AuthServiceConfig{
		Clock:   clock,
		Logger:  log,
		Metrics: metrics,
	})

	if metrics != nil {
		if err := metrics.Register(metric.NewStateCollector(keys, auth, clock)); err != nil {
			return fmt.Errorf("register state collector: %w", err)
		}
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Tokens:   tokens,
		Sessions: auth,
		Ready: func() error {
			if keys.Destroyed() {
				return errors.New("token key destroyed")
			}
			return nil
		},
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
		CORSOrigins: cfg.Server.HTTP.CORSOrigins,
		Version:     info.Version,
		Clock:       clock,
		Logger:      log,
	})

	srv := httpserver.New(httpserver.Config{
		Addr:        cfg.Server.HTTP.Addr,
		TLSCertFile: cfg.Server.HTTP.TLSCertFile,
		TLSKeyFile:  cfg.Server.HTTP.TLSKeyFile,
		ReadTimeout: cfg.Server.HTTP.ReadTimeout,
		IdleTimeout: cfg.Server.HTTP.IdleTimeout,
	}, router, log)
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.HTTP.Addr, err)
	}

	if path := loader.FilePath(); path != "" {
		watcher, err := watchConfig(path, loader, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	shutdownHandler.OnShutdown("http", srv.Shutdown)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	go func() {
		if err := srv.Serve(); err != nil {
			log.Error("http server failed", "error", err)
			cancel(err)
		}
	}()

	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}

	log.Info("server stopped")
	return nil
}

// watchConfig reloads the configuration file on change. Only the log
// level is applied live; other settings need a restart.
func watchConfig(path string, loader *confloader.Loader, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		cfg, err := config.Reload(loader)
		if err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Warn("log level not applied", "error", err)
			return
		}
		log.Info("config reloaded", "log_level", cfg.Log.Level)
	})
	watcher.StartAsync()
	return watcher, nil
}
