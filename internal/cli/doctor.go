package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/backlog/internal/config"
	"github.com/example/backlog/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the backlog environment",
		Long: `Environment health check for backlog.

Validates:
- Backlog home directory (~/.backlog/ or $BACKLOG_HOME)
- Config file syntax
- Database path resolution and connectivity

Examples:
  backlog doctor          # Run full health check
  backlog doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkHomeDir(),
				checkConfig(),
				checkDatabase(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'backlog init' to set up the environment.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkHomeDir validates that the backlog home directory exists.
func checkHomeDir() CheckResult {
	home, err := config.HomeDir()
	if err != nil {
		return CheckResult{Name: "Home directory", Status: "✗", Details: "  " + err.Error()}
	}
	if _, err := os.Stat(home); os.IsNotExist(err) {
		return CheckResult{Name: "Home directory", Status: "⚠", Details: "  Missing: " + home}
	}
	return CheckResult{Name: "Home directory", Status: "✓"}
}

// checkConfig validates that config.json, if present, parses.
func checkConfig() CheckResult {
	if _, err := config.Load(); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

// checkDatabase validates path resolution and connectivity.
func checkDatabase() CheckResult {
	path, err := config.DBPath()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}

	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + path + "\n  " + err.Error()}
	}
	if err := database.Ping(); err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + path + "\n  " + err.Error()}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}
