package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsan5566/food-waste/internal/alerts"
	"github.com/bsan5566/food-waste/internal/catalog"
	"github.com/bsan5566/food-waste/internal/db"
	"github.com/bsan5566/food-waste/internal/filter"
	"github.com/bsan5566/food-waste/internal/report"
	"github.com/bsan5566/food-waste/internal/server"
	"github.com/bsan5566/food-waste/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	conn, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer conn.Close()

	providerRepo := store.NewProviderRepository(conn)
	receiverRepo := store.NewReceiverRepository(conn)
	listingRepo := store.NewListingRepository(conn)
	claimRepo := store.NewClaimRepository(conn)

	srv, err := server.New(
		config,
		logger,
		providerRepo,
		receiverRepo,
		listingRepo,
		claimRepo,
		catalog.New(conn),
		filter.New(conn),
		alerts.New(conn),
		report.New(conn),
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
