package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdutta/afsmeter/internal/statecache"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the in-progress assessment",
	Long:  "Clears the cached wizard state (selection, answers, organization info) so the next run starts fresh. Submitted assessments are kept; pass --database to delete those too.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := statecache.Open()
		if err != nil {
			return fmt.Errorf("open state cache: %w", err)
		}
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clear state cache: %w", err)
		}
		fmt.Println("In-progress assessment cleared.")

		wipeDB, _ := cmd.Flags().GetBool("database")
		if !wipeDB {
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil
		}

		if !confirm(cmd, fmt.Sprintf("Delete %s and all submitted assessments?", dbPath)) {
			fmt.Println("Database kept.")
			return nil
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
		fmt.Println("Database deleted.")
		return nil
	},
}

func confirm(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func init() {
	resetCmd.Flags().Bool("database", false, "Also delete the assessment database")
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
