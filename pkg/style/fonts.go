package style

import "strings"

// Font is an entry in the font picker.
type Font struct {
	Name     string
	Stack    string
	Category string
}

// Font categories.
const (
	FontSans  = "sans-serif"
	FontSerif = "serif"
	FontMono  = "monospace"
)

var fonts = []Font{
	{Name: "Inter", Stack: "Inter, sans-serif", Category: FontSans},
	{Name: "Poppins", Stack: "Poppins, sans-serif", Category: FontSans},
	{Name: "Roboto", Stack: "Roboto, Helvetica, Arial, sans-serif", Category: FontSans},
	{Name: "System", Stack: "system-ui, sans-serif", Category: FontSans},
	{Name: "Merriweather", Stack: "Merriweather, serif", Category: FontSerif},
	{Name: "Playfair Display", Stack: "Playfair Display, serif", Category: FontSerif},
	{Name: "Georgia", Stack: "Georgia, 'Times New Roman', serif", Category: FontSerif},
	{Name: "JetBrains Mono", Stack: "JetBrains Mono, monospace", Category: FontMono},
}

// Fonts returns the font catalogue.
func Fonts() []Font {
	out := make([]Font, len(fonts))
	copy(out, fonts)
	return out
}

// FontStack returns the CSS stack for a font name (case-insensitive).
func FontStack(name string) (string, bool) {
	for _, f := range fonts {
		if strings.EqualFold(f.Name, name) {
			return f.Stack, true
		}
	}
	return "", false
}

// Radii offered by the radius picker.
var Radii = []string{"0", "4px", "8px", "12px", "16px", "24px"}
