package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Pagesmith builds websites from drag-and-drop components",
		Long:          `Pagesmith is a no-code website builder. Pages are ordered lists of typed components styled by a shared design palette; they can be edited from the terminal or over HTTP and published as standalone HTML.`,
		Version:       buildinfo.Current(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/pagesmith/config.toml)")
	root.PersistentFlags().StringVar(&c.siteID, "site", "", "website id (default: the current website)")

	root.AddGroup(
		&cobra.Group{ID: "sites", Title: "Websites:"},
		&cobra.Group{ID: "edit", Title: "Editing:"},
		&cobra.Group{ID: "output", Title: "Output:"},
	)

	for _, cmd := range []*cobra.Command{
		c.newCommand(), c.listCommand(), c.useCommand(), c.deleteCommand(),
		c.componentsCommand(), c.templatesCommand(),
	} {
		cmd.GroupID = "sites"
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.showCommand(), c.addCommand(), c.removeCommand(), c.duplicateCommand(),
		c.moveCommand(), c.setCommand(), c.controlsCommand(), c.imageCommand(), c.themeCommand(),
		c.metaCommand(), c.editCommand(),
	} {
		cmd.GroupID = "edit"
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.renderCommand(), c.publishCommand(), c.serveCommand(),
	} {
		cmd.GroupID = "output"
		root.AddCommand(cmd)
	}
	root.AddCommand(c.cacheCommand())
	root.InitDefaultCompletionCmd()

	return root
}
