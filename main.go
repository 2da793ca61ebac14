package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-tracker/config"
	"health-tracker/db"
	"health-tracker/logging"
	"health-tracker/server"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("could not run server", logging.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	conf, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	logger := logging.New(os.Stderr, conf.Logger).With("component", logging.ComponentApp)
	if conf.Logger.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := db.Connect(ctx, conf.Mongo.URI, conf.Mongo.ConnectTimeout)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("could not disconnect from mongodb", logging.Error(err))
		}
	}()
	logger.Info("connected to mongodb", slog.String("database", conf.Mongo.Database))

	database := client.Database(conf.Mongo.Database)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		return errors.WithStack(err)
	}

	handler := server.NewHandler(server.Deps{
		Config:   conf,
		Entries:  db.NewEntryStore(database.Collection(db.EntriesCollection)),
		Users:    db.NewUserStore(database.Collection(db.UsersCollection)),
		Sessions: db.NewSessionStore(database.Collection(db.SessionsCollection)),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              conf.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", conf.HTTP.Address), slog.Bool("google_login", conf.Google.Enabled()))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.WithStack(err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.WithStack(srv.Shutdown(shutdownCtx))
}
