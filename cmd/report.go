package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/store"
)

func init() {
	reportCmd.Flags().Bool("json", false, "Print the rescored report as JSON")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the most recent assessment report",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := resolveFramework(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.Assessments().Latest(context.Background())
		if err != nil {
			return fmt.Errorf("query latest assessment: %w", err)
		}
		if rec == nil {
			fmt.Println("No submitted assessments yet. Run `afsmeter` to start one.")
			return nil
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			rep := rescore(doc, rec)
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		printRecord(doc, rec)
		return nil
	},
}

// rescore rebuilds the report from the stored payload against the
// current framework.
func rescore(doc *framework.Document, rec *store.AssessmentRecord) assessment.Report {
	sel := assessment.SelectionFromAreaIDs(doc, rec.Payload.SelectedAreas)
	sheet := assessment.AnswerSheet(rec.Payload.Answers)
	if sheet == nil {
		sheet = assessment.NewAnswerSheet()
	}
	return assessment.BuildReport(assessment.SelectedDomains(doc, sel), sheet)
}

// printRecord re-scores the stored payload against the current
// framework and prints the breakdown.
func printRecord(doc *framework.Document, rec *store.AssessmentRecord) {
	rep := rescore(doc, rec)

	fmt.Printf("Assessment %s\n", rec.ID)
	fmt.Printf("%s — %s\n", rec.Organization, rec.Team)
	fmt.Printf("Submitted %s by %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.AssessorName)
	fmt.Printf("Framework %s v%s\n\n", rec.FrameworkName, rec.FrameworkVersion)

	fmt.Printf("Overall: %.2f / %.0f — %s\n", rep.OverallScore, assessment.MaxScore, rep.OverallLevel)
	fmt.Printf("         %s\n\n", rep.OverallLevel.Description())

	for _, d := range rep.Domains {
		fmt.Printf("%s  %.2f (%s)\n", d.Name, d.Score, d.Level)
		for _, a := range d.Areas {
			fmt.Printf("  %-12s %-40s %.2f  %d/%d answered\n",
				a.AreaID, truncateTo(a.Name, 40), a.Score, a.Answered, a.Questions)
		}
		fmt.Println()
	}

	c := rep.Completion
	fmt.Printf("Completion: %d/%d questions (%.0f%%)", c.Answered, c.Questions, c.Percent*100)
	switch {
	case c.IsComplete:
		fmt.Print(" — complete")
	case c.IsSubstantial:
		fmt.Print(" — substantial")
	default:
		fmt.Print(" — partial")
	}
	fmt.Println()

	if rep.Improvement.IsAchievable {
		fmt.Printf("Gap to optimized: %.1f%%\n", rep.Improvement.GapToTarget)
	}
}

func truncateTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return strings.Repeat(".", n)
	}
	return s[:n-1] + "…"
}
