package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdutta/afsmeter/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM provider configuration and usage",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which provider recommendations will use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		source := "AFSMETER_* environment"
		if err := cfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				fmt.Println("No LLM provider configured.")
				fmt.Println()
				fmt.Println("Set AFSMETER_LLM_PROVIDER plus the matching API key, or export one of")
				fmt.Println("ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY.")
				return nil
			}
			cfg = discovered
			source = "discovered API key"
		}

		fmt.Printf("Provider: %s (%s)\n", cfg.Provider, source)
		fmt.Printf("Model:    %s\n", configuredModel(cfg))
		fmt.Printf("Timeout:  %s\n", cfg.Timeout)
		fmt.Printf("Retries:  up to %d attempts\n", cfg.Retry.MaxAttempts)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		stats, err := s.Events().LLMStats(ctx)
		if err != nil {
			return fmt.Errorf("query llm stats: %w", err)
		}
		if stats.Requests == 0 {
			fmt.Println("No LLM requests recorded yet.")
			return nil
		}

		fmt.Printf("Requests: %d (%d failed)\n", stats.Requests, stats.Failures)
		fmt.Printf("Tokens:   %d in / %d out\n\n", stats.InputTokens, stats.OutputTokens)

		usage, err := s.Events().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query llm usage: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PROVIDER\tMODEL\tCALLS\tIN\tOUT\tAVG LATENCY")
		for _, u := range usage {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%dms\n",
				u.Provider, u.Model, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		}
		return w.Flush()
	},
}

// configuredModel returns the model alias the active provider will use.
func configuredModel(cfg llm.Config) string {
	switch cfg.Provider {
	case "anthropic":
		return cfg.Anthropic.Model
	case "openai":
		return cfg.OpenAI.Model
	case "gemini":
		return cfg.Gemini.Model
	case "openrouter":
		return cfg.OpenRouter.Model
	default:
		return "-"
	}
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
