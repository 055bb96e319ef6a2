package main

import (
	"context"
	"fmt"

	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/internal/ingest"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var loadCommand = &cli.Command{
	Name:  "load",
	Usage: "Refresh the database from the CSV source files",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "providers", Usage: "Providers CSV path (overrides PROVIDERS_CSV)"},
		&cli.StringFlag{Name: "receivers", Usage: "Receivers CSV path (overrides RECEIVERS_CSV)"},
		&cli.StringFlag{Name: "listings", Usage: "Food listings CSV path (overrides FOOD_LISTINGS_CSV)"},
		&cli.StringFlag{Name: "claims", Usage: "Claims CSV path (overrides CLAIMS_CSV)"},
	},
	Action: load,
}

func load(cCtx *cli.Context) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	conn, err := db.Connect(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	src := ingest.Sources{
		Providers: config.ProvidersCSV,
		Receivers: config.ReceiversCSV,
		Listings:  config.ListingsCSV,
		Claims:    config.ClaimsCSV,
	}
	if v := cCtx.String("providers"); v != "" {
		src.Providers = v
	}
	if v := cCtx.String("receivers"); v != "" {
		src.Receivers = v
	}
	if v := cCtx.String("listings"); v != "" {
		src.Listings = v
	}
	if v := cCtx.String("claims"); v != "" {
		src.Claims = v
	}

	loader := ingest.New(conn, logger)
	if err := loader.Load(ctx, src); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	logger.WithField("database", config.DatabasePath).Info("database refreshed")

	return nil
}
