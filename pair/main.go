package main

import (
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/hatstand/somfy"
	"github.com/hatstand/somfy/config"
	"github.com/hatstand/somfy/counter"
	"github.com/hatstand/somfy/remote"
	"github.com/hatstand/somfy/rts"
	"go.uber.org/zap"
	"periph.io/x/periph/host"
)

var configPath = flag.String("config", "config.yaml", "Path to YAML config")
var address = flag.String("address", "", "Address in hexadecimal of the configured remote to send as")
var command = flag.String("command", "p", "Command to send: u, s, d or p")
var count = flag.Int("count", 1, "Number of bursts to send")

func findRemote(registry *remote.Registry, hex string) *remote.Device {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(hex), "0x"), 16, 32)
	if err != nil {
		return nil
	}
	for _, d := range registry.Devices() {
		if d.Identity == uint32(id) {
			return d
		}
	}
	return nil
}

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	registry, err := remote.NewRegistry(cfg.Remotes)
	if err != nil {
		logger.Fatal("Invalid remotes", zap.Error(err))
	}
	dev := findRemote(registry, *address)
	if dev == nil {
		logger.Fatal("Address must be one of the configured remotes", zap.String("address", *address))
	}
	if len(*command) != 1 {
		logger.Fatal("Command must be a single character", zap.String("command", *command))
	}

	store, err := counter.OpenBoltStore(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("Failed to open rolling code store", zap.Error(err))
	}
	defer store.Close()

	if _, err := host.Init(); err != nil {
		logger.Fatal("Failed to initialise periph", zap.Error(err))
	}
	line, err := somfy.OpenDataLine(cfg.Radio.TxPin)
	if err != nil {
		logger.Fatal("Failed to open data line", zap.Error(err))
	}
	if err := somfy.LockRealtime(); err != nil {
		logger.Warn("Running without realtime settings", zap.Error(err))
	}

	rfm69, err := somfy.NewRFM69(cfg.Radio, logger)
	if err != nil {
		logger.Fatal("Failed to initialise radio", zap.Error(err))
	}
	defer rfm69.Close()

	dispatcher := remote.NewDispatcher(registry, store, rts.NewTransmitter(rfm69, line, logger), nil, logger, nil)
	logger.Info("Sending", zap.Stringer("remote", dev), zap.String("command", *command))
	for i := 0; i < *count; i++ {
		if i > 0 {
			time.Sleep(time.Second)
		}
		if _, err := dispatcher.Handle(dev.Topic, []byte(*command)); err != nil {
			logger.Error("Failed to send", zap.Error(err))
			return
		}
	}
}
