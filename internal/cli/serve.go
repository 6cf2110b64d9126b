package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/server"
	"github.com/matzehuels/pagesmith/pkg/templates"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	publicURL string
	noCache   bool
}

// serveCommand creates the command that runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor API and serve published sites",
		Long: `Run the HTTP server. The editor API lives under /api/websites and published
pages are served from /sites/<slug>. The server stops gracefully on
interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.config()
			if err != nil {
				return err
			}
			if opts.addr == "" {
				opts.addr = cfg.Server.Addr
			}
			if opts.publicURL == "" {
				opts.publicURL = cfg.Server.PublicURL
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cat, err := templates.Default()
			if err != nil {
				return err
			}
			pub := c.newPublisher(ctx, opts.noCache)
			defer pub.Close()

			srv, err := server.New(server.Config{
				Store:        st,
				Publisher:    pub,
				Registry:     c.registry(),
				Templates:    cat,
				Logger:       logger,
				PublicURL:    opts.publicURL,
				HistoryLimit: cfg.Editor.HistoryLimit,
				SessionIdle:  cfg.Server.SessionIdle,
				Retry: editor.RetryPolicy{
					Attempts: cfg.Editor.SaveAttempts,
					Delay:    cfg.Editor.RetryDelay,
				},
			})
			if err != nil {
				return err
			}

			printSuccess("Serving on %s", StyleLink.Render("http://"+opts.addr))
			printDetail("store: %s · cache: %s", cfg.Store.URI, cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&opts.publicURL, "public-url", "", "origin published sites are reachable at")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	return cmd
}
