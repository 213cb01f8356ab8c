package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/commerce-console/internal/client"
	"github.com/MKhiriev/commerce-console/internal/config"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	// the file logger needs the profile dir from the config
	log := logger.NewLogger("commerce-console", os.Stderr)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, buildInfo)
	if err != nil {
		log.Fatal().Err(err).Msg("init console error")
	}

	runErr := app.Run(ctx)
	if err = app.Close(); err != nil {
		log.Error().Err(err).Msg("error closing console")
	}
	if runErr != nil {
		stop()
		log.Fatal().Err(runErr).Msg("console run error")
	}
}
