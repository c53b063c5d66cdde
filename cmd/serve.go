package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"train_station/config"
	"train_station/database"
	"train_station/handler"
	"train_station/helper"
	"train_station/policy"
	"train_station/router"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	settings := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(settings)
	if err != nil {
		return err
	}
	database.SeedData(ctx, store, settings)

	authz, err := policy.New(ctx)
	if err != nil {
		return err
	}
	images, err := helper.NewImageStore(settings)
	if err != nil {
		return err
	}

	var events helper.SeatEvents = helper.NewLocalSeatEvents()
	if settings.RedisAddr != "" {
		redisEvents := helper.NewRedisSeatEvents(settings.RedisAddr, settings.RedisPassword)
		if err := redisEvents.Ping(ctx); err != nil {
			log.Printf("redis %s unavailable, seat events stay in process: %v", settings.RedisAddr, err)
		} else {
			defer redisEvents.Close()
			events = redisEvents
		}
	}

	scheduler, err := helper.StartBlacklistScheduler(store)
	if err != nil {
		return err
	}
	defer scheduler.Shutdown()

	departures, err := helper.StartDepartureScheduler(helper.NewDepartureAnnouncer(store, events))
	if err != nil {
		return err
	}
	defer departures.Stop()

	app := router.New(&handler.Handler{
		Store:    store,
		Tokens:   helper.NewTokenIssuer(settings),
		Authz:    authz,
		Images:   images,
		Events:   events,
		Mailer:   helper.NewMailer(settings),
		Settings: settings,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", settings.Addr)
	return app.Listen(settings.Addr)
}
