package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements scan progress reporting with a progress bar.
type CLIProgressReporter struct {
	quiet     bool
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering Ruby files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Outlining %d Ruby files\n", totalFiles)

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Outlining files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileScanned(path string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnScanComplete(scanned, failed int) {
	if c.quiet {
		return
	}
	elapsed := time.Since(c.startTime).Round(time.Millisecond)
	if failed > 0 {
		log.Printf("Outlined %d files, %d failed (%s)\n", scanned, failed, elapsed)
		return
	}
	log.Printf("Outlined %d files (%s)\n", scanned, elapsed)
}
