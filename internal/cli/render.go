package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/publish"
	"github.com/matzehuels/pagesmith/pkg/registry"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	mode     string // edit or preview
	output   string // output file; stdout when empty
	fragment bool   // body only, without the document head
}

// renderCommand creates the command that renders the current page.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{mode: string(registry.ModePreview)}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the current page as HTML",
		Long: `Render the current page. Preview mode produces exactly what visitors see;
edit mode adds the selection wrappers and inline edit controls and is
always a body fragment.`,
		Example: `  pagesmith render -o preview.html
  pagesmith render --mode edit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := registry.ParseMode(opts.mode)
			if err != nil {
				return err
			}

			ws, err := c.openSite(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			var page []byte
			if mode == registry.ModeEdit || opts.fragment {
				html, err := ws.session.RenderHTML(mode)
				if err != nil {
					return err
				}
				page = []byte(html)
			} else {
				pub := publish.NewRunner(nil, nil, c.registry(), c.Logger)
				page, err = pub.Render(ws.session.Website(), publish.Options{})
				if err != nil {
					return err
				}
			}

			if opts.output == "" {
				_, err := os.Stdout.Write(page)
				return err
			}
			if err := os.WriteFile(opts.output, page, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Rendered %s mode", mode)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "render mode: edit or preview")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.fragment, "fragment", false, "render the page body only")
	return cmd
}
