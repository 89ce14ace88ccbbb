package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codescope/internal/contextfile"
)

var readContextCmd = &cobra.Command{
	Use:   "read-context <dir>",
	Short: "Print the saved project context for a directory",
	Long: `Print the saved .codescope context as Markdown.

Intended for session-start hooks: a directory that was never analyzed
produces no output and exits 0, and a corrupt context file is reported on
stderr without failing the caller.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		ctx, err := contextfile.Load(dir)
		if err != nil {
			// Log-and-continue: aborting a session-start hook over a corrupt
			// cache file would be worse than starting without context.
			log.Error().Err(err).Str("dir", dir).Msg("could not read project context")
			return nil
		}
		if ctx == nil {
			return nil
		}

		fmt.Print(ctx.FormatForClaude())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readContextCmd)
}
