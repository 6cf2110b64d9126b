package cli

import (
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
)

// addCommand creates the command that inserts a component.
func (c *CLI) addCommand() *cobra.Command {
	at := -1

	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Add a component with default content",
		Example: `  pagesmith add header
  pagesmith add gallery --at 1`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec model.Record
			_, err := c.edit(cmd.Context(), func(sess *editor.Session) error {
				var err error
				rec, err = sess.Insert(model.Type(args[0]), at)
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s %s", rec.Type, StyleHighlight.Render(rec.ID))
			printNextStep("Edit its content", appName+" set "+rec.ID+" <field>=<value>")
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", -1, "insert position (default: end of page)")
	return cmd
}

func (c *CLI) completeTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, e := range c.registry().Entries() {
		out = append(out, string(e.Type)+"\t"+e.DisplayName)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// removeCommand creates the command that deletes a component.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.edit(cmd.Context(), func(sess *editor.Session) error {
				return sess.Remove(args[0])
			})
			if errors.Is(err, errors.ErrCodeNotFound) {
				c.Logger.Debug("component already removed", "id", args[0])
				printInfo("%s is already removed", StyleHighlight.Render(args[0]))
				return nil
			}
			if err != nil {
				return err
			}
			printSuccess("Removed %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}

// duplicateCommand creates the command that copies a component.
func (c *CLI) duplicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Insert a copy of a component right after it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec model.Record
			_, err := c.edit(cmd.Context(), func(sess *editor.Session) error {
				var err error
				rec, err = sess.Duplicate(args[0])
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Duplicated %s as %s", args[0], StyleHighlight.Render(rec.ID))
			return nil
		},
	}
}

// moveOpts holds the command-line flags for the move command.
type moveOpts struct {
	up   bool
	down bool
}

// moveCommand creates the command that reorders a component.
func (c *CLI) moveCommand() *cobra.Command {
	var opts moveOpts

	cmd := &cobra.Command{
		Use:   "move <id> [index]",
		Short: "Move a component to a position, or one step up or down",
		Example: `  pagesmith move c1a2b3 0
  pagesmith move c1a2b3 --down`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			sess, err := c.edit(cmd.Context(), func(sess *editor.Session) error {
				switch {
				case opts.up:
					return sess.MoveUp(id)
				case opts.down:
					return sess.MoveDown(id)
				case len(args) == 2:
					to, err := strconv.Atoi(args[1])
					if err != nil {
						return errors.Validation("index", "index must be a number, got %q", args[1])
					}
					from := slices.Index(sess.Order(), id)
					if from < 0 {
						return errors.NotFound(id)
					}
					return sess.Move(from, to)
				default:
					return errors.New(errors.ErrCodeInvalidInput, "give a target index or --up/--down")
				}
			})
			if err != nil {
				return err
			}
			printSuccess("Moved %s to position %d", StyleHighlight.Render(id), slices.Index(sess.Order(), id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.up, "up", false, "move one position earlier")
	cmd.Flags().BoolVar(&opts.down, "down", false, "move one position later")
	cmd.MarkFlagsMutuallyExclusive("up", "down")
	return cmd
}
