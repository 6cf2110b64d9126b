package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/templates"
)

// componentsCommand creates the command that browses the component catalogue.
func (c *CLI) componentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "components [query]",
		Short: "List the component types that can be added to a page",
		Example: `  pagesmith components
  pagesmith components gallery`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			entries := c.registry().Search(query)
			if len(entries) == 0 {
				printWarning("No components match %q", query)
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{string(e.Category), string(e.Type), e.DisplayName, e.Description})
			}
			fmt.Println(renderTable([]string{"Category", "Type", "Name", "Description"}, rows, nil))
			printNextStep("Add one", appName+" add <type>")
			return nil
		},
	}
}

// templatesCommand creates the command that lists starter templates.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List starter templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := templates.Default()
			if err != nil {
				return err
			}
			infos := cat.List()
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{info.ID, info.Name, fmt.Sprint(info.Components), info.Description})
			}
			fmt.Println(renderTable([]string{"ID", "Name", "Items", "Description"}, rows, nil))
			printNextStep("Start from one", appName+" new \"My site\" --template <id>")
			return nil
		},
	}
}
