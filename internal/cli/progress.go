package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter shows graph building progress with a progress bar.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	graphBar  *progressbar.ProgressBar
	processed int
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		out:   out,
	}
}

func (c *CLIProgressReporter) OnGraphBuildingStart(totalFunctions int) {
	if c.quiet {
		return
	}
	if c.graphBar != nil {
		c.graphBar.Finish()
	}
	c.processed = 0
	c.graphBar = progressbar.NewOptions(totalFunctions,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Building graph"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("funcs/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFunctionProcessed(processed, total int, name string) {
	if c.quiet || c.graphBar == nil {
		return
	}
	if delta := processed - c.processed; delta > 0 {
		c.graphBar.Add(delta)
		c.processed = processed
	}
}

func (c *CLIProgressReporter) OnGraphBuildingComplete(nodeCount, edgeCount int, duration time.Duration) {
	if c.quiet {
		return
	}
	if c.graphBar != nil {
		c.graphBar.Finish()
		c.graphBar = nil
	}
	fmt.Fprintf(c.out, "✓ Graph built: %d nodes, %d edges in %.2fs\n", nodeCount, edgeCount, duration.Seconds())
}
