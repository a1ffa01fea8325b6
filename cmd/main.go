package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/hatstand/somfy"
	"github.com/hatstand/somfy/broker"
	"github.com/hatstand/somfy/config"
	"github.com/hatstand/somfy/counter"
	"github.com/hatstand/somfy/remote"
	"github.com/hatstand/somfy/rts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"periph.io/x/periph/host"
)

var configPath = flag.String("config", "config.yaml", "Path to YAML config")
var debug = flag.Bool("debug", false, "Log every frame")
var reset = flag.Bool("reset", false, "Reset every rolling code to its default before serving")
var dryRun = flag.Bool("n", false, "Use a stub radio and an in-memory rolling code store")

func newLogger() *zap.Logger {
	c := zap.NewProductionConfig()
	if *debug {
		c.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func openStore(c config.Storage) (counter.Store, error) {
	if *dryRun {
		return counter.NewMemoryStore(), nil
	}
	return counter.OpenBoltStore(c.Path)
}

// openRadio returns the radio and its data line, and a func to release them.
func openRadio(c config.Radio, logger *zap.Logger) (rts.Radio, rts.Line, func(), error) {
	if *dryRun {
		return &somfy.StubRadio{Logger: logger}, &somfy.StubLine{}, func() {}, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, nil, err
	}
	line, err := somfy.OpenDataLine(c.TxPin)
	if err != nil {
		return nil, nil, nil, err
	}
	rfm69, err := somfy.NewRFM69(c, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return rfm69, line, rfm69.Close, nil
}

func newServer(listen string, registry *remote.Registry, store counter.Store, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/remotes", func(w http.ResponseWriter, r *http.Request) {
		states, err := remote.Snapshot(registry, store)
		if err != nil {
			logger.Error("Failed to read rolling codes", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(states)
	})
	return &http.Server{Addr: listen, Handler: mux}
}

// watchdog pets systemd until ctx is done, if the unit asks for it.
func watchdog(ctx context.Context, logger *zap.Logger) error {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return nil
	}
	logger.Info("Systemd watchdog enabled", zap.Duration("interval", interval))
	t := time.NewTicker(interval / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			daemon.SdNotify(false, "WATCHDOG=1")
		}
	}
}

func main() {
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := somfy.LockRealtime(); err != nil {
		logger.Warn("Running without realtime settings, pulse timing may suffer", zap.Error(err))
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open rolling code store", zap.Error(err))
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	registry, err := remote.NewRegistry(cfg.Remotes)
	if err != nil {
		logger.Fatal("Invalid remotes", zap.Error(err))
	}
	if *reset || cfg.ResetRollingCodes {
		if err := remote.ResetCounters(registry, store, logger); err != nil {
			logger.Fatal("Failed to reset rolling codes", zap.Error(err))
		}
	}
	if err := remote.LogRemotes(registry, store, logger); err != nil {
		logger.Fatal("Failed to read rolling codes", zap.Error(err))
	}

	radio, line, closeRadio, err := openRadio(cfg.Radio, logger)
	if err != nil {
		logger.Fatal("Failed to initialise radio", zap.Error(err))
	}
	defer closeRadio()
	transmitter := rts.NewTransmitter(radio, line, logger)

	var mq *broker.Client
	ack := remote.AcknowledgerFunc(func(a remote.Ack) error {
		return mq.Acknowledge(a)
	})
	dispatcher := remote.NewDispatcher(registry, store, transmitter, ack, logger, prometheus.DefaultRegisterer)
	mq = broker.NewClient(cfg.MQTT, registry.Topics(), dispatcher, logger)
	if err := mq.Connect(); err != nil {
		logger.Fatal("Failed to connect to MQTT broker", zap.Error(err))
	}
	defer mq.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	srv := newServer(cfg.HTTP.Listen, registry, store, logger)
	g.Go(func() error {
		logger.Info("Listening", zap.String("address", cfg.HTTP.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(timeout)
	})
	g.Go(func() error {
		return mq.Run(ctx)
	})
	g.Go(func() error {
		return watchdog(ctx, logger)
	})

	daemon.SdNotify(false, "READY=1")
	if err := g.Wait(); err != nil {
		logger.Error("Shutting down", zap.Error(err))
	} else {
		logger.Info("Shutting down")
	}
	daemon.SdNotify(false, "STOPPING=1")
}
