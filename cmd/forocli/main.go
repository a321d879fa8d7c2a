package main

import (
	"context"
	"log"

	"github.com/proyectoforocine/forocore/internal/cli"
	"github.com/proyectoforocine/forocore/internal/config"
	"github.com/proyectoforocine/forocore/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
