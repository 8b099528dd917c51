package main

import (
	"context"
	"os"
	"time"

	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/drivers/database"
	"meetocure-service/internal/app/drivers/logger"
	"meetocure-service/internal/app/migration"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the meetocure databases",
	}
	rootCmd.AddCommand(indexesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func indexesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes the service relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")

			driverConfig := config.NewDriverConfig()
			internalConfig := config.NewInternalConfig()
			log := logger.NewLogrusLogger(driverConfig, internalConfig)

			client := database.NewMongoDB(driverConfig)
			defer client.Disconnect(context.Background())

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			count, err := migration.EnsureIndexes(ctx, client, driverConfig.MongoDB.DbName, internalConfig, log)
			if err != nil {
				return err
			}
			log.Infof("Ensured %d index(es) on %s", count, driverConfig.MongoDB.DbName)
			return nil
		},
	}
	cmd.Flags().Duration("timeout", time.Minute, "Deadline for creating all indexes")
	return cmd
}
