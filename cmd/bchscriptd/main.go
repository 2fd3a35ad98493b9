package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bchsuite/bchscript/configuration"
	"github.com/bchsuite/bchscript/debugserver"
)

func main() {
	cfg, err := configuration.LoadConfiguration()
	if err != nil {
		zap.NewExample().Fatal("unable to load configuration", zap.Error(err))
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zapCfg.Build()
	if err != nil {
		zap.NewExample().Fatal("unable to build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	store, err := debugserver.OpenTxStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("unable to open transaction store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	server := debugserver.New(cfg, logger, store)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
