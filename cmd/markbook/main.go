package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/markbook/internal/buildinfo"
	"github.com/dmitrijs2005/markbook/internal/cli"
	"github.com/dmitrijs2005/markbook/internal/config"
	"github.com/dmitrijs2005/markbook/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:], os.Environ())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
