package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codescope/internal/model"
	"codescope/internal/output"
	"codescope/internal/training"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage the trained pattern catalog",
}

var (
	flagPatternCategory  string
	flagPatternFramework string
	flagPatternVersion   string
	flagPatternTitle     string
	flagPatternDesc      string
	flagPatternTags      []string
	flagPatternFile      string

	flagSearchType      string
	flagSearchFramework string
	flagSearchTags      []string
	flagSearchLimit     int
)

var patternsAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a pattern to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := os.ReadFile(flagPatternFile)
		if err != nil {
			return fmt.Errorf("read pattern code: %w", err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		err = store.Add(model.CodePattern{
			ID:          args[0],
			Category:    flagPatternCategory,
			Framework:   flagPatternFramework,
			Version:     flagPatternVersion,
			Title:       flagPatternTitle,
			Description: flagPatternDesc,
			Code:        string(code),
			Tags:        flagPatternTags,
		})
		if err != nil {
			return err
		}
		output.Success("Added pattern %s", args[0])
		return nil
	},
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all patterns in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		patterns := store.All()
		if len(patterns) == 0 {
			output.Dim("catalog is empty")
			return nil
		}
		output.Title("Patterns (%d)", len(patterns))
		for _, p := range patterns {
			fmt.Printf("%s\t%s\t%s\t%s\t(used %d)\n",
				p.ID, p.Framework, p.Category, p.Title, p.UsageCount)
		}
		return nil
	},
}

var patternsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a pattern from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Remove(args[0]); err != nil {
			return err
		}
		output.Success("Removed pattern %s", args[0])
		return nil
	},
}

var patternsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one pattern including its code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		p, err := store.Find(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n\nFramework: %s %s\nCategory: %s\nTags: %s\n\n%s\n\n%s\n",
			p.Title, p.Framework, p.Version, p.Category,
			strings.Join(p.Tags, ", "), p.Description, p.Code)
		return nil
	},
}

var patternsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog by project type, framework, and tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		matches := store.Search(training.Query{
			ProjectType: model.ProjectType(flagSearchType),
			Framework:   flagSearchFramework,
			Tags:        flagSearchTags,
			Limit:       flagSearchLimit,
		})
		if len(matches) == 0 {
			output.Dim("no matching patterns")
			return nil
		}
		for _, p := range matches {
			fmt.Printf("%.2f\t%s\t%s\t[%s]\n", p.RelevanceScore, p.ID, p.Title, p.Category)
		}
		return nil
	},
}

func openStore() (*training.Store, error) {
	store := training.NewStore(cfg.PatternsPath)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	patternsAddCmd.Flags().StringVar(&flagPatternCategory, "category", "", "pattern category (e.g. error-handling)")
	patternsAddCmd.Flags().StringVar(&flagPatternFramework, "framework", "", "target framework")
	patternsAddCmd.Flags().StringVar(&flagPatternVersion, "framework-version", "", "framework version")
	patternsAddCmd.Flags().StringVar(&flagPatternTitle, "title", "", "pattern title")
	patternsAddCmd.Flags().StringVar(&flagPatternDesc, "description", "", "pattern description")
	patternsAddCmd.Flags().StringSliceVar(&flagPatternTags, "tags", nil, "search tags")
	patternsAddCmd.Flags().StringVar(&flagPatternFile, "file", "", "file containing the pattern code")
	patternsAddCmd.MarkFlagRequired("category")
	patternsAddCmd.MarkFlagRequired("framework")
	patternsAddCmd.MarkFlagRequired("title")
	patternsAddCmd.MarkFlagRequired("file")

	patternsSearchCmd.Flags().StringVar(&flagSearchType, "type", "", "project type (rust, node, python, ...)")
	patternsSearchCmd.Flags().StringVar(&flagSearchFramework, "framework", "", "framework name")
	patternsSearchCmd.Flags().StringSliceVar(&flagSearchTags, "tags", nil, "tags to match")
	patternsSearchCmd.Flags().IntVar(&flagSearchLimit, "limit", training.DefaultSearchLimit, "maximum results")

	patternsCmd.AddCommand(patternsAddCmd, patternsListCmd, patternsRemoveCmd, patternsShowCmd, patternsSearchCmd)
	rootCmd.AddCommand(patternsCmd)
}
