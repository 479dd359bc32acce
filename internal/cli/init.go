package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/roster/internal/config"
	"github.com/example/roster/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the roster database and config",
		Long: `Initialize the roster database (default ~/.roster/roster.db) and write
.roster/config.json in the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}
			if network != "" {
				cfg.Network = network
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.DBPath != "" {
				db.SetPath(cfg.DBPath)
			}
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing roster database at %s\n", dbPath)
			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Config written to %s\n", filepath.Join(cwd, ".roster", "config.json"))

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println(`  roster network set libera "(qaohv)~&@%+"`)
			fmt.Println(`  roster join -n libera "#thelounge" @xPaw`)
			fmt.Println(`  roster names -n libera "#thelounge"`)

			return nil
		},
	}

	cmd.Flags().StringVarP(&network, "network", "n", "", "Default network for later commands")
	return cmd
}
