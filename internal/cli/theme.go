package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/style"
)

// themeOpts holds the command-line flags for the theme command.
type themeOpts struct {
	preset string
	font   string
	radius string
	list   bool
}

// themeCommand creates the command that edits the design palette.
func (c *CLI) themeCommand() *cobra.Command {
	var opts themeOpts

	cmd := &cobra.Command{
		Use:   "theme [field=value...]",
		Short: "Change the design palette shared by all components",
		Long: `Change the design palette. Components that do not override a property
follow the palette, so one change restyles the whole page.

Fields: ` + strings.Join(editor.PaletteFields, ", "),
		Example: `  pagesmith theme --preset ocean
  pagesmith theme primaryColor=#e11d48 --font "Playfair Display" --radius 16px
  pagesmith theme --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				printThemeCatalogue()
				return nil
			}
			fields, err := parseAssignments(args)
			if err != nil {
				return err
			}

			sess, err := c.edit(cmd.Context(), func(sess *editor.Session) error {
				if opts.preset != "" {
					if err := sess.ApplyPreset(opts.preset); err != nil {
						return err
					}
				}
				if opts.font != "" {
					if err := sess.SetFont(opts.font); err != nil {
						return err
					}
				}
				if opts.radius != "" {
					if err := sess.SetRadius(opts.radius); err != nil {
						return err
					}
				}
				if len(fields) > 0 {
					return sess.UpdatePalette(fields)
				}
				return nil
			})
			if err != nil {
				return err
			}

			p := sess.Document().Palette
			printSuccess("Palette updated")
			printPalette(p)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.preset, "preset", "", "apply a named palette preset")
	cmd.Flags().StringVar(&opts.font, "font", "", "font from the catalogue")
	cmd.Flags().StringVar(&opts.radius, "radius", "", "corner radius, e.g. 8px")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list presets, fonts and radii")
	cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return style.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func printPalette(p model.DesignPalette) {
	printKeyValue("Primary", p.PrimaryColor)
	printKeyValue("Background", p.BackgroundColor)
	printKeyValue("Title", p.TitleColor)
	printKeyValue("Description", p.DescriptionColor)
	printKeyValue("Font", p.FontFamily)
	printKeyValue("Radius", p.BorderRadius)
}

func printThemeCatalogue() {
	fmt.Println(StyleTitle.Render("Presets"))
	for _, name := range style.PresetNames() {
		p, _ := style.Preset(name)
		printDetail("%-12s %s on %s", name, p.PrimaryColor, p.BackgroundColor)
	}
	printNewline()
	fmt.Println(StyleTitle.Render("Fonts"))
	for _, f := range style.Fonts() {
		printDetail("%-18s %s", f.Name, f.Category)
	}
	printNewline()
	fmt.Println(StyleTitle.Render("Radii"))
	printDetail("%s", strings.Join(style.Radii, "  "))
}

// metaOpts holds the command-line flags for the meta command.
type metaOpts struct {
	title       string
	slug        string
	status      string
	seoTitle    string
	description string
	keywords    []string
	ogImage     string
	favicon     string
}

// metaCommand creates the command that edits identity and SEO settings.
func (c *CLI) metaCommand() *cobra.Command {
	var opts metaOpts

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Change the title, slug, status and SEO settings",
		Example: `  pagesmith meta --title "Jane Doe" --slug jane
  pagesmith meta --description "Designer in Berlin" --keywords design,portfolio`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			seoChanged := flags.Changed("seo-title") || flags.Changed("description") ||
				flags.Changed("keywords") || flags.Changed("og-image") || flags.Changed("favicon")

			var before editor.Meta
			sess, err := c.edit(cmd.Context(), func(sess *editor.Session) error {
				before = sess.Meta()
				if flags.Changed("title") {
					if err := sess.SetTitle(opts.title); err != nil {
						return err
					}
				}
				if flags.Changed("slug") {
					if err := sess.SetSlug(opts.slug); err != nil {
						return err
					}
				}
				if flags.Changed("status") {
					if err := sess.SetStatus(model.Status(opts.status)); err != nil {
						return err
					}
				}
				if !seoChanged {
					return nil
				}
				seo := sess.Document().SEO
				if flags.Changed("seo-title") {
					seo.Title = opts.seoTitle
				}
				if flags.Changed("description") {
					seo.Description = opts.description
				}
				if flags.Changed("keywords") {
					seo.Keywords = opts.keywords
				}
				if flags.Changed("og-image") {
					seo.OGImage = opts.ogImage
				}
				if flags.Changed("favicon") {
					seo.Favicon = opts.favicon
				}
				return sess.SetSEO(seo)
			})
			if err != nil {
				return err
			}

			meta, seo := sess.Meta(), sess.Document().SEO
			if before.Slug != "" && (before.Slug != meta.Slug || meta.Status != model.StatusPublished) {
				pub := c.newPublisher(cmd.Context(), false)
				if err := pub.Forget(cmd.Context(), before.Slug); err != nil {
					c.Logger.Warn("could not drop published page", "slug", before.Slug, "err", err)
				}
				pub.Close()
			}
			printKeyValue("Title", meta.Title)
			printKeyValue("Slug", meta.Slug)
			printKeyValue("Status", string(meta.Status))
			printKeyValue("SEO title", seo.Title)
			printKeyValue("Description", seo.Description)
			printKeyValue("Keywords", strings.Join(seo.Keywords, ", "))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.title, "title", "", "website title")
	f.StringVar(&opts.slug, "slug", "", "URL slug")
	f.StringVar(&opts.status, "status", "", "draft or published")
	f.StringVar(&opts.seoTitle, "seo-title", "", "title shown by search engines")
	f.StringVar(&opts.description, "description", "", "meta description")
	f.StringSliceVar(&opts.keywords, "keywords", nil, "comma-separated keywords")
	f.StringVar(&opts.ogImage, "og-image", "", "social preview image URL")
	f.StringVar(&opts.favicon, "favicon", "", "favicon URL")
	return cmd
}
