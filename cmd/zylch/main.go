package main

import (
	"context"
	"fmt"

	"github.com/zylch/zylch-go/internal/adapter"
	"github.com/zylch/zylch-go/internal/cli"
	"github.com/zylch/zylch-go/internal/client"
	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/service"
	"github.com/zylch/zylch-go/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("zylch")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	gateway, err := adapter.NewHTTPRemoteGateway(cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote gateway")
	}

	browser, err := adapter.NewBrowserLogin(cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create browser login flow")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewServices(storages, gateway, browser, cfg, log)
	ui := cli.New(services, log)

	app, err := client.NewApp(services, ui, cfg.Sync, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
