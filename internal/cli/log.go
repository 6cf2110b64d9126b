// Package cli implements the pagesmith command-line interface.
//
// This package provides commands for creating websites from templates,
// editing their component lists, rendering and publishing pages, running
// the HTTP editor API and managing the render cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new, list, use, delete: Manage websites in the configured store
//   - components, templates: Browse the component catalogue and templates
//   - add, remove, duplicate, move, set, image: Edit the current website
//   - theme, meta: Change the design palette, identity and SEO settings
//   - render, publish: Produce edit or preview HTML and standalone pages
//   - edit: Interactive terminal editor with drag and keyboard reordering
//   - serve: Run the HTTP editor API and published-site server
//   - cache: Manage the render cache
//
// # Logging
//
// Commands log through a charmbracelet logger carried in the command
// context. --verbose (-v) switches to debug level; otherwise the level
// comes from the [log] section of the config file.
//
// # Example
//
//	import "github.com/matzehuels/pagesmith/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a command step took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Published jane (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx for commands and the TUI.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
