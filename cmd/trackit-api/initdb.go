package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catDforD/Trackit/internal/config"
	"github.com/catDforD/Trackit/internal/repository"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database schema",
	Long:  `Create the SQLite database file and apply the schema, without starting the server.`,
	RunE:  runInitDB,
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database ready at %s\n", db.Path())
	return nil
}
