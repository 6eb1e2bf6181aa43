package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/backlog/internal/config"
	"github.com/example/backlog/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the backlog database",
		Long:  `Initialize the backlog database at ~/.backlog/backlog.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := config.DBPath()
			if err != nil {
				return fmt.Errorf("failed to resolve database path: %w", err)
			}

			fmt.Printf("Initializing backlog database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  backlog project create \"My Project\" --prefix MP")
			fmt.Println("  backlog summary")

			return nil
		},
	}
}

// initConfig writes a default config.json if one does not exist yet.
func initConfig() error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(home + "/config.json"); err == nil {
		return nil
	}

	cfg := &config.Config{
		Version:   "1",
		ListLimit: config.DefaultListLimit,
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("✓ Config file created at %s/config.json\n", home)
	return nil
}
