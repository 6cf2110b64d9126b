package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCommand creates the command that lists stored websites.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored websites",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sites, err := st.ListWebsites(ctx)
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				printInfo("No websites yet")
				printNextStep("Create one", appName+" new \"My site\"")
				return nil
			}

			cur, _ := readCurrent()
			rows := make([][]string, 0, len(sites))
			for _, s := range sites {
				marker := ""
				if s.ID == cur {
					marker = "▸"
				}
				rows = append(rows, []string{
					marker,
					shortID(s.ID),
					s.Title,
					s.Slug,
					string(s.Status),
					fmt.Sprint(s.Components),
					s.UpdatedAt.Local().Format("Jan 2 15:04"),
				})
			}
			fmt.Println(renderTable(
				[]string{"", "ID", "Title", "Slug", "Status", "Items", "Updated"},
				rows,
				func(row int) bool { return row >= 0 && row < len(sites) && sites[row].ID == cur },
			))
			return nil
		},
	}
}

// useCommand creates the command that selects the current website.
func (c *CLI) useCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Select the website later commands act on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			w, err := st.LoadWebsite(ctx, args[0])
			if err != nil {
				return err
			}
			if err := writeCurrent(w.ID); err != nil {
				return err
			}
			printSuccess("Now editing %s", StyleHighlight.Render(w.Title))
			printDetail("%s · %s", w.ID, plural(len(w.Components), "component"))
			return nil
		},
	}
}

// deleteCommand creates the command that removes a website.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a website and its published page",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			w, err := st.LoadWebsite(ctx, args[0])
			if err != nil {
				return err
			}
			if err := st.DeleteWebsite(ctx, w.ID); err != nil {
				return err
			}

			pub := c.newPublisher(ctx, false)
			defer pub.Close()
			if err := pub.Forget(ctx, w.Slug); err != nil {
				c.Logger.Warn("could not drop published page", "slug", w.Slug, "err", err)
			}
			if err := clearCurrent(w.ID); err != nil {
				return err
			}

			printSuccess("Deleted %s", StyleHighlight.Render(w.Title))
			return nil
		},
	}
}

