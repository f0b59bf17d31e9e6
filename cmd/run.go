package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdutta/afsmeter/internal/app"
	"github.com/sdutta/afsmeter/internal/llm"
	"github.com/sdutta/afsmeter/internal/recommend"
	"github.com/sdutta/afsmeter/internal/statecache"
	"github.com/sdutta/afsmeter/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	doc, err := resolveFramework(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cache, err := statecache.Open()
	if err != nil {
		return fmt.Errorf("open state cache: %w", err)
	}

	opts := app.Options{
		Doc:         doc,
		Cache:       cache,
		Assessments: st.Assessments(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.Events())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Recommendations will be unavailable.")
	} else {
		opts.Recommender = recommend.NewService(provider, recommend.DefaultConfig())
	}

	return app.Run(opts)
}
