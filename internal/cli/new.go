package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/templates"
)

// newOpts holds the command-line flags for the new command.
type newOpts struct {
	template string // template id to start from
	slug     string // URL slug; derived from the title when empty
}

// newCommand creates the command that starts a website.
func (c *CLI) newCommand() *cobra.Command {
	var opts newOpts

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a website and make it current",
		Long: `Create a website, optionally from a template, save it to the configured
store and select it for later commands.`,
		Example: `  pagesmith new "Jane Doe" --template portfolio
  pagesmith new "Acme Studio" --slug acme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sess, err := c.newSession(st)
			if err != nil {
				return err
			}
			if opts.template != "" {
				cat, err := templates.Default()
				if err != nil {
					return err
				}
				t, err := cat.Load(opts.template)
				if err != nil {
					return err
				}
				sess.LoadTemplate(t)
			}
			if err := sess.SetTitle(args[0]); err != nil {
				return err
			}
			if opts.slug != "" {
				if err := sess.SetSlug(opts.slug); err != nil {
					return err
				}
			}

			res, err := sess.Save(ctx)
			if err != nil {
				return err
			}
			if err := writeCurrent(res.ID); err != nil {
				return err
			}

			meta := sess.Meta()
			printSuccess("Created %s", StyleHighlight.Render(meta.Title))
			printKeyValue("ID", res.ID)
			printKeyValue("Slug", meta.Slug)
			printKeyValue("Domain", res.Domain)
			printKeyValue("Components", plural(len(sess.Order()), "component"))
			printNewline()
			printNextStep("Add a component", appName+" add header")
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "start from a template (see: pagesmith templates)")
	cmd.Flags().StringVar(&opts.slug, "slug", "", "URL slug (default: derived from the title)")
	cmd.RegisterFlagCompletionFunc("template", completeTemplates)

	return cmd
}

func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cat, err := templates.Default()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, info := range cat.List() {
		out = append(out, info.ID+"\t"+info.Name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
