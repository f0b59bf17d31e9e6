package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List submitted assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := s.Assessments().List(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("list assessments: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No submitted assessments yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tORGANIZATION\tTEAM\tSCORE\tLEVEL")
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.Organization, r.Team, r.OverallScore, r.MaturityLevel)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of records to show (0 = all)")
}
