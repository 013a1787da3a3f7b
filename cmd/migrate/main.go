package main

import (
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showcase/backend/internal/config"
	"showcase/backend/internal/db"
	"showcase/backend/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath, migrationsDir string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or inspect database migrations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(true)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateUp(dbPath, migrationsDir)
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (defaults to DB_PATH)")
	root.PersistentFlags().StringVar(&migrationsDir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateUp(dbPath, migrationsDir)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateStatus(cmd, dbPath, migrationsDir)
		},
	})
	return root
}

func open(dbPath, migrationsDir string) (*sql.DB, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if migrationsDir == "" {
		migrationsDir = cfg.MigrationsDir
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, "", err
	}
	return database, migrationsDir, nil
}

func migrateUp(dbPath, migrationsDir string) error {
	database, dir, err := open(dbPath, migrationsDir)
	if err != nil {
		return err
	}
	defer database.Close()
	defer logger.Sync()

	if err := db.RunMigrations(database, dir); err != nil {
		return err
	}
	logger.Info("migrations applied successfully", zap.String("dir", dir))
	return nil
}

func migrateStatus(cmd *cobra.Command, dbPath, migrationsDir string) error {
	database, dir, err := open(dbPath, migrationsDir)
	if err != nil {
		return err
	}
	defer database.Close()

	migrations, err := db.MigrationStatus(database, dir)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tAPPLIED AT")
	for _, m := range migrations {
		status, appliedAt := "pending", "-"
		if m.Applied {
			status = "applied"
			appliedAt = m.AppliedAt
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, status, appliedAt)
	}
	return w.Flush()
}
