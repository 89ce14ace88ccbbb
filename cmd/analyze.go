package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codescope/internal/analyzer"
	"codescope/internal/contextfile"
	"codescope/internal/model"
	"codescope/internal/observations"
	"codescope/internal/output"
	"codescope/internal/training"
)

var (
	flagTags      []string
	flagNoArchive bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Analyze a project directory and write its .codescope context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		ctx, result, err := runAnalysis(root, flagTags, !flagNoArchive)
		if err != nil {
			return err
		}

		for _, s := range result.Suggestions {
			switch s.Severity {
			case model.Warning, model.Error:
				output.Warn("%s: %s %s", s.Severity, s.Message, s.File)
			default:
				output.Dim("%s: %s", s.Severity, s.Message)
			}
		}
		output.Success("Analyzed %s (%s, %d files, %d dependencies)",
			result.Project.Name, result.Project.ProjectType,
			result.Statistics.TotalFiles, result.Statistics.PackageCount)

		fmt.Print(ctx.FormatForClaude())
		return nil
	},
}

// runAnalysis is the full pipeline shared by the analyze command and the MCP
// analyze_project tool: detect and extract the project, match patterns,
// optionally archive the complete result, then synthesize and persist the
// compact context.
func runAnalysis(root string, tags []string, archive bool) (*contextfile.ProjectContext, *model.AnalysisResult, error) {
	analysis, err := analyzer.New().Analyze(root)
	if err != nil {
		return nil, nil, err
	}

	store := training.NewStore(cfg.PatternsPath)
	if err := store.Load(); err != nil {
		return nil, nil, err
	}

	patterns := store.Search(training.Query{
		ProjectType: analysis.Project.ProjectType,
		Framework:   analysis.Project.Metadata.FrameworkLabel(),
		Tags:        tags,
	})
	for _, p := range patterns {
		if err := store.MarkUsed(p.ID); err != nil {
			log.Warn().Err(err).Str("id", p.ID).Msg("could not record pattern usage")
		}
	}

	result := &model.AnalysisResult{
		Project:     analysis.Project,
		Patterns:    patterns,
		Suggestions: analysis.Suggestions,
		Statistics:  analysis.Statistics,
	}

	ctx := contextfile.FromAnalysis(result)

	if archive {
		full, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, nil, fmt.Errorf("serialize analysis result: %w", err)
		}
		obsID, err := observations.NewStore(cfg.ObservationsDir).Save("analyze_project", string(full))
		if err != nil {
			return nil, nil, err
		}
		ctx.ObservationID = obsID
	}

	if _, err := ctx.Save(root); err != nil {
		return nil, nil, err
	}
	return ctx, result, nil
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&flagTags, "tags", nil, "tags to bias pattern matching")
	analyzeCmd.Flags().BoolVar(&flagNoArchive, "no-archive", false, "skip archiving the full analysis result")
	rootCmd.AddCommand(analyzeCmd)
}
