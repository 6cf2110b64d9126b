package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/publish"
)

// publishOpts holds the command-line flags for the publish command.
type publishOpts struct {
	output  string // output directory; dist/<slug> when empty
	baseURL string // canonical origin of the published site
	lang    string
	noCache bool
	refresh bool
}

// publishCommand creates the command that publishes the current website.
func (c *CLI) publishCommand() *cobra.Command {
	var opts publishOpts

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Mark the website published and write a standalone page",
		Long: `Mark the current website as published, save it and write a standalone
index.html. Unchanged content is served from the render cache.`,
		Example: `  pagesmith publish
  pagesmith publish -o public --base-url https://jane.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			ws, err := c.openSite(ctx)
			if err != nil {
				return err
			}
			defer ws.Close()

			sess := ws.session
			if err := sess.SetStatus(model.StatusPublished); err != nil {
				return err
			}
			spinner := newSpinnerWithContext(ctx, "Saving...")
			spinner.Start()
			defer spinner.Stop()
			if sess.Dirty() {
				if _, err := sess.Save(ctx); err != nil {
					return err
				}
			}

			if opts.baseURL == "" {
				if cfg, err := c.config(); err == nil && cfg.Server.PublicURL != "" && sess.Meta().Slug != "" {
					opts.baseURL = cfg.Server.PublicURL + "/sites/" + sess.Meta().Slug
				}
			}

			spinner.SetMessage("Rendering...")
			pub := c.newPublisher(ctx, opts.noCache)
			defer pub.Close()
			res, err := pub.Publish(ctx, sess.Website(), publish.Options{
				BaseURL: opts.baseURL,
				Lang:    opts.lang,
				Refresh: opts.refresh,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			dir := opts.output
			if dir == "" {
				dir = filepath.Join("dist", firstLabel(sess.Meta().Slug, sess.Meta().ID))
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			path := filepath.Join(dir, "index.html")
			if err := os.WriteFile(path, res.HTML, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			spinner.Stop()
			prog.done("Published " + sess.Meta().Title)
			printStats(len(sess.Order()), len(res.HTML), res.CacheHit)
			printFile(path)
			if opts.baseURL != "" {
				printKeyValue("URL", StyleLink.Render(opts.baseURL))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: dist/<slug>)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "canonical URL of the published page")
	cmd.Flags().StringVar(&opts.lang, "lang", publish.DefaultLang, "document language")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached page exists")
	return cmd
}
