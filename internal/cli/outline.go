package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rubyscope/rubyscope/internal/config"
	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/outliner"
)

var outlineFormatFlag string

// outlineCmd represents the outline command
var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Extract the outline of a Ruby file",
	Long: `Outline parses a Ruby file and prints its document symbols: classes,
modules, methods, constants and attributes, nested as in the source.

Examples:
  # Print a readable tree
  rubyscope outline app/models/user.rb

  # Emit LSP-style JSON
  rubyscope outline app/models/user.rb --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
	outlineCmd.Flags().StringVarP(&outlineFormatFlag, "format", "f", "", "Output format: text or json (default from config)")
}

func runOutline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format := cfg.Output.Format
	if outlineFormatFlag != "" {
		format = outlineFormatFlag
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}

	service := outliner.New(
		outline.WithMaxNodes(cfg.Engine.MaxNodes),
		outline.WithVerify(cfg.Engine.SortVerify),
	)

	result, err := service.OutlineFile(ctx, args[0])
	if err != nil {
		return err
	}

	if result.Partial {
		fmt.Fprintln(os.Stderr, "warning: outline is partial (node budget exhausted)")
	}

	return renderOutline(os.Stdout, result, format)
}
