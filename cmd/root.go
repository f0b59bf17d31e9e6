package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "afsmeter",
	Short: "AFS framework self-assessment",
	Long:  "afsmeter — terminal self-assessment wizard for the AFS trustworthy-AI framework: pick the domains that apply, answer yes/no questions, get a scored maturity report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides AFSMETER_DB env var)")
	rootCmd.PersistentFlags().String("framework", "", "Path to a framework JSON document (default: embedded AFS framework)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then AFSMETER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveFramework loads the document from --framework, or falls back
// to the embedded default.
func resolveFramework(cmd *cobra.Command) (*framework.Document, error) {
	if p, _ := cmd.Flags().GetString("framework"); p != "" {
		doc, err := framework.LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load framework %s: %w", p, err)
		}
		return doc, nil
	}
	return framework.Default(), nil
}
