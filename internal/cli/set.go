package cli

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/httputil"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// setOpts holds the command-line flags for the set command.
type setOpts struct {
	styles   []string // style overrides as prop=value; an empty value clears
	controls []string // edit controls as name=value, dispatched like a UI edit
}

// setCommand creates the command that edits component content.
func (c *CLI) setCommand() *cobra.Command {
	var opts setOpts

	cmd := &cobra.Command{
		Use:   "set <id> [field=value...]",
		Short: "Change a component's fields, styles or controls",
		Long: `Change a component. Field values are parsed as YAML, so numbers, booleans
and lists work as expected. Style overrides accept literal CSS values or
theme references such as theme:primary.`,
		Example: `  pagesmith set c1a2b3 title="Hello there" alignment=left
  pagesmith set c4d5e6 columns=4 'images=[{url: https://example.com/a.png}]'
  pagesmith set c1a2b3 --style primaryColor=#e11d48 --style padding=
  pagesmith set c1a2b3 --control title="Hello"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			fields, err := parseFields(args[1:])
			if err != nil {
				return err
			}
			styles, err := parseAssignments(opts.styles)
			if err != nil {
				return err
			}
			controls, err := parseAssignments(opts.controls)
			if err != nil {
				return err
			}
			if len(fields) == 0 && len(styles) == 0 && len(controls) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to change")
			}

			_, err = c.edit(cmd.Context(), func(sess *editor.Session) error {
				if len(styles) > 0 {
					fields["styles"] = mergeStyles(sess, id, styles)
				}
				if len(fields) > 0 {
					if err := sess.Update(id, fields); err != nil {
						return err
					}
				}
				for name, value := range controls {
					if err := sess.Dispatch(id+"."+name, value); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Updated %s", StyleHighlight.Render(id))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&opts.styles, "style", nil, "style override prop=value (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.controls, "control", "c", nil, "edit control name=value (repeatable, see: pagesmith controls)")
	return cmd
}

// parseFields decodes key=value arguments. Numbers, booleans and flow
// sequences use YAML syntax; anything else is kept as the literal text.
func parseFields(args []string) (map[string]any, error) {
	raw, err := parseAssignments(args)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if v == "" {
			out[k] = ""
			continue
		}
		var decoded any
		if err := yaml.Unmarshal([]byte(v), &decoded); err != nil {
			out[k] = v
			continue
		}
		switch decoded.(type) {
		case bool, int, float64, []any:
			out[k] = decoded
		default:
			out[k] = v
		}
	}
	return out, nil
}

// mergeStyles returns the component's style overrides with changes applied.
func mergeStyles(sess *editor.Session, id string, changes map[string]string) map[string]string {
	out := map[string]string{}
	if rec, ok := sess.Document().Find(id); ok {
		for k, v := range rec.Styles {
			out[k] = v
		}
	}
	for k, v := range changes {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// controlsCommand creates the command that lists a component's edit controls.
func (c *CLI) controlsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "controls <id>",
		Short: "List the edit controls a component offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openSite(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			n, err := ws.session.RenderComponent(args[0], registry.ModeEdit)
			if err != nil {
				return err
			}
			controls := view.Controls(n)
			if len(controls) == 0 {
				printInfo("%s has no edit controls", args[0])
				return nil
			}
			prefix := args[0] + "."
			rows := make([][]string, 0, len(controls))
			for _, ctl := range controls {
				value := ctl.Value
				if len(ctl.Options) > 0 {
					value += StyleDim.Render(" (" + strings.Join(ctl.Options, "|") + ")")
				}
				rows = append(rows, []string{strings.TrimPrefix(ctl.ID, prefix), ctl.Kind, ctl.Label, truncate(value, 40)})
			}
			fmt.Println(renderTable([]string{"Control", "Kind", "Label", "Value"}, rows, nil))
			return nil
		},
	}
}

// imageCommand creates the command that loads an image into a component.
func (c *CLI) imageCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "image <id> <field> <file|url>",
		Short: "Embed an image from a file or URL into a component field",
		Long: `Embed an image into a component field as a data URI. For galleries the
field "images" appends a new image; any other field is replaced.`,
		Example: `  pagesmith image c1a2b3 backgroundImage ./hero.jpg
  pagesmith image c4d5e6 images https://example.com/photo.png`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, field, src := args[0], args[1], args[2]

			var (
				body        io.Reader
				contentType string
			)
			if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
				spinner := newSpinnerWithContext(ctx, "Fetching "+src)
				spinner.Start()
				f := httputil.NewFetcher(httputil.Options{
					Cache:    c.newCache(ctx, noCache),
					Logger:   c.Logger,
					MaxBytes: editor.MaxImageBytes,
				})
				res, err := f.Fetch(ctx, src)
				if err != nil {
					spinner.Stop()
					return err
				}
				if res.CacheHit {
					spinner.StopWithSuccess("Fetched " + src + " " + StyleDim.Render("(cached)"))
				} else {
					spinner.StopWithSuccess("Fetched " + src)
				}
				body, contentType = bytes.NewReader(res.Body), res.ContentType
			} else {
				file, err := os.Open(src)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "open image")
				}
				defer file.Close()
				body, contentType = file, mime.TypeByExtension(filepath.Ext(src))
			}

			_, err := c.edit(ctx, func(sess *editor.Session) error {
				return <-sess.LoadImage(ctx, id, field, body, contentType)
			})
			if err != nil {
				return err
			}
			printSuccess("Loaded image into %s.%s", StyleHighlight.Render(id), field)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always download, bypassing the cache")
	return cmd
}
