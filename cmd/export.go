package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/orginfo"
	"github.com/sdutta/afsmeter/internal/statecache"
	"github.com/sdutta/afsmeter/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessment data as JSON",
	Long:  "Writes the in-progress session's submission payload as JSON to stdout. Use --latest for the most recent submitted record, or --all for every stored record. --out writes to a file instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		latest, _ := cmd.Flags().GetBool("latest")
		all, _ := cmd.Flags().GetBool("all")

		var doc any
		var err error
		switch {
		case all:
			doc, err = exportRecords(cmd, 0)
		case latest:
			doc, err = exportLatest(cmd)
		default:
			doc, err = exportSession(cmd)
		}
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}
		data = append(data, '\n')

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// exportSession builds the submission payload of the cached
// in-progress run.
func exportSession(cmd *cobra.Command) (any, error) {
	fw, err := resolveFramework(cmd)
	if err != nil {
		return nil, err
	}
	cache, err := statecache.Open()
	if err != nil {
		return nil, fmt.Errorf("open state cache: %w", err)
	}

	var sel assessment.Selection
	if !cache.Load(statecache.KeySelection, &sel) || !sel.Validate() {
		return nil, fmt.Errorf("no in-progress assessment to export (run `afsmeter` to start one, or use --latest)")
	}
	var sheet assessment.AnswerSheet
	if !cache.Load(statecache.KeyAnswers, &sheet) {
		sheet = assessment.NewAnswerSheet()
	}
	var oi orginfo.OrgInfo
	cache.Load(statecache.KeyOrgInfo, &oi)

	return assessment.BuildPayload(oi, fw, sel, sheet), nil
}

func exportLatest(cmd *cobra.Command) (any, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	rec, err := s.Assessments().Latest(context.Background())
	if err != nil {
		return nil, fmt.Errorf("query latest assessment: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("no submitted assessments to export")
	}
	return rec, nil
}

func exportRecords(cmd *cobra.Command, limit int) (any, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	recs, err := s.Assessments().List(context.Background(), limit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return struct {
		Assessments []store.AssessmentRecord `json:"assessments"`
	}{recs}, nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	exportCmd.Flags().Bool("latest", false, "Export the most recent submitted assessment")
	exportCmd.Flags().Bool("all", false, "Export every stored assessment")
	exportCmd.Flags().String("out", "", "Write to a file instead of stdout")
}
