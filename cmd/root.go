package cmd

import (
	"context"
	"fmt"
	"log"

	"train_station/config"
	"train_station/database"
	"train_station/helper"
	"train_station/repository"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "train-station",
	Short: "Train station booking API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnvFile(envFile)
	},
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd, createSuperuserCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// openStore connects and migrates the configured database.
func openStore(settings config.Settings) (*repository.Store, error) {
	db, err := database.Connect(settings)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return repository.New(db), nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and seed defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()
		store, err := openStore(settings)
		if err != nil {
			return err
		}
		database.SeedData(cmd.Context(), store, settings)
		return nil
	},
}

var superuserEmail, superuserPassword string

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an administrator or promote an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if superuserEmail == "" || superuserPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		store, err := openStore(config.Load())
		if err != nil {
			return err
		}
		return createSuperuser(cmd.Context(), store, superuserEmail, superuserPassword)
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "administrator email")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "administrator password")
}

func createSuperuser(ctx context.Context, store *repository.Store, email, password string) error {
	hash, err := helper.HashPassword(password)
	if err != nil {
		return err
	}
	user, created, err := store.EnsureSuperuser(ctx, email, hash)
	if err != nil {
		return err
	}
	if created {
		log.Printf("superuser %s created (id=%d)", user.Email, user.ID)
	} else {
		log.Printf("user %s promoted to superuser", user.Email)
	}
	return nil
}
