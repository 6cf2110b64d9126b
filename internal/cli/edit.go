package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// editCommand creates the command that opens the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var noMouse bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive page editor",
		Long: `Open the terminal editor on the current website. Components can be
reordered with the keyboard or by dragging rows with the mouse; the list
scrolls automatically while a drag hovers near the top or bottom edge.
Carousel components show their current slide and autoplay state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}

			ws, err := c.openSite(ctx)
			if err != nil {
				return err
			}
			defer ws.Close()

			// The TUI owns the terminal; keep log lines out of it.
			level := c.Logger.GetLevel()
			c.Logger.SetLevel(log.FatalLevel)
			defer c.Logger.SetLevel(level)

			m := NewEditorModel(ctx, ws.session, cfg.Editor.AutoplayInterval)
			defer m.Close()

			opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
			if !noMouse {
				opts = append(opts, tea.WithMouseCellMotion())
			}
			if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
				return fmt.Errorf("editor: %w", err)
			}

			if ws.session.Dirty() {
				printWarning("Unsaved changes were discarded")
				return nil
			}
			printSuccess("Closed %s", StyleHighlight.Render(ws.session.Meta().Title))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noMouse, "no-mouse", false, "disable mouse dragging")
	return cmd
}
