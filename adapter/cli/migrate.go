package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fieldflow/bookd/internal/app"
	"github.com/fieldflow/bookd/pkg/config"
	"github.com/fieldflow/bookd/pkg/observability"
	"github.com/spf13/cobra"
)

var migrateDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "migrations", "directory containing migration SQL files")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	logger := observability.LoggerFromEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	container, err := app.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	dir := filepath.Join(migrateDir, cfg.Driver)
	files, err := migrationFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files in %s", dir)
	}

	ctx := cmd.Context()
	for _, file := range files {
		schema, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if container.Pool != nil {
			_, err = container.Pool.Exec(ctx, string(schema))
		} else {
			_, err = container.DB.ExecContext(ctx, string(schema))
		}
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		logger.Info("applied migration", "file", filepath.Base(file))
	}
	return nil
}

func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migration dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
