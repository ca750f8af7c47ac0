package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/rosebudapp/rosebud/internal/client/cli"
	"github.com/rosebudapp/rosebud/internal/client/config"
	"github.com/rosebudapp/rosebud/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer logFile.Close()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(logFile, nil)))

	app := cli.NewApp(ctx, cfg, logger)
	app.Run(ctx)
}
