package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rubyscope/rubyscope/internal/config"
	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/outliner"
	"github.com/rubyscope/rubyscope/internal/protocol"
	"github.com/rubyscope/rubyscope/internal/scanner"
)

var (
	scanQuietFlag  bool
	scanFormatFlag string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Outline every Ruby file under a directory",
	Long: `Scan discovers Ruby files under a directory (the current one by default),
outlines each, and prints the results. File patterns and ignore rules come
from .rubyscope/config.yml.

Examples:
  # Scan the current project
  rubyscope scan

  # Scan a specific directory as JSON, without progress output
  rubyscope scan lib/ --format json --quiet
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanQuietFlag, "quiet", "q", false, "Disable progress output")
	scanCmd.Flags().StringVarP(&scanFormatFlag, "format", "f", "", "Output format: text or json (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling scan...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if len(args) == 1 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving directory: %w", err)
		}
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format := cfg.Output.Format
	if scanFormatFlag != "" {
		format = scanFormatFlag
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}

	service := outliner.New(
		outline.WithMaxNodes(cfg.Engine.MaxNodes),
		outline.WithVerify(cfg.Engine.SortVerify),
	)

	s, err := scanner.New(rootDir, cfg.Paths.Ruby, cfg.Paths.Ignore, service, NewCLIProgressReporter(scanQuietFlag))
	if err != nil {
		return err
	}

	outlines, err := s.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return renderScan(os.Stdout, rootDir, outlines, format)
}

// renderScan prints all file outlines in the requested format.
func renderScan(w io.Writer, rootDir string, outlines []scanner.FileOutline, format string) error {
	if format == "json" {
		type fileEntry struct {
			File    string      `json:"file"`
			Symbols interface{} `json:"symbols,omitempty"`
			Partial bool        `json:"partial,omitempty"`
			Error   string      `json:"error,omitempty"`
		}

		entries := make([]fileEntry, 0, len(outlines))
		for _, fo := range outlines {
			entry := fileEntry{File: relativeTo(rootDir, fo.Path)}
			if fo.Err != nil {
				entry.Error = fo.Err.Error()
			} else {
				entry.Symbols = protocol.DocumentSymbols(fo.Result.Symbols)
				entry.Partial = fo.Result.Partial
			}
			entries = append(entries, entry)
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, fo := range outlines {
		fmt.Fprintf(w, "== %s\n", relativeTo(rootDir, fo.Path))
		if fo.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", fo.Err)
			continue
		}
		if err := renderOutline(w, fo.Result, "text"); err != nil {
			return err
		}
	}
	return nil
}

func relativeTo(rootDir, path string) string {
	if rel, err := filepath.Rel(rootDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
