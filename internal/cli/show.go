package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/model"
)

// showCommand creates the command that prints the current page outline.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current website and its components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openSite(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			printOutline(ws.session)
			return nil
		},
	}
}

func printOutline(sess *editor.Session) {
	meta := sess.Meta()
	doc := sess.Document()

	fmt.Println(StyleTitle.Render(meta.Title))
	printKeyValue("ID", meta.ID)
	printKeyValue("Slug", meta.Slug)
	printKeyValue("Status", string(meta.Status))
	printKeyValue("Palette", fmt.Sprintf("%s on %s · %s", doc.Palette.PrimaryColor, doc.Palette.BackgroundColor, doc.Palette.FontFamily))
	printNewline()

	if len(doc.Components) == 0 {
		printInfo("The page is empty")
		printNextStep("Add a component", appName+" add header")
		return
	}
	rows := make([][]string, 0, len(doc.Components))
	for i, rec := range doc.Components {
		rows = append(rows, []string{fmt.Sprint(i), rec.ID, string(rec.Type), truncate(label(rec), 48)})
	}
	fmt.Println(renderTable([]string{"#", "ID", "Type", "Content"}, rows, nil))
}

// label is a one-line human description of a component.
func label(rec model.Record) string {
	switch p := rec.Payload.(type) {
	case *model.Header:
		return p.Title
	case *model.Text:
		return p.Content
	case *model.Profile:
		return strings.TrimSpace(p.Name + " · " + p.Headline)
	case *model.Gallery:
		return fmt.Sprintf("%s, %s", plural(len(p.Images), "image"), p.Mode)
	case *model.Experience:
		return plural(len(p.Experiences), "position")
	case *model.Projects:
		return firstLabel(p.Heading, plural(len(p.Projects), "project"))
	case *model.Services:
		return firstLabel(p.Heading, plural(len(p.Services), "service"))
	case *model.Reviews:
		return firstLabel(p.Heading, plural(len(p.Reviews), "review"))
	case *model.Pricing:
		return firstLabel(p.Heading, plural(len(p.Plans), "plan"))
	case *model.Navigation:
		return firstLabel(p.Brand, plural(len(p.MenuItems), "link"))
	case *model.Skills:
		return firstLabel(p.Heading, plural(len(p.Skills), "skill"))
	case *model.Contact:
		return firstLabel(p.Heading, p.Email)
	case *model.Spacer:
		return p.Height
	case *model.Divider:
		return p.LineStyle + " " + p.Thickness
	case *model.Embed:
		return firstLabel(p.Title, "embedded HTML")
	case *model.Footer:
		return p.Text
	}
	return "unknown component"
}

func firstLabel(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
