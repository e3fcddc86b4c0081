package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nada/admin/internal/config"
	"github.com/nada/admin/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:          "nadactl",
	Short:        "Operator tools for the NADA admin console",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect opens the database named by the environment configuration.
func connect(ctx context.Context) (*config.Config, *storage.Mongo, error) {
	cfg := config.Load()
	if cfg.MongoURI == "" {
		return nil, nil, fmt.Errorf("MONGO_URI is required")
	}
	m, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTransactions)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	return cfg, m, nil
}
