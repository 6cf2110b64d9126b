package style

import (
	"slices"

	"github.com/matzehuels/pagesmith/pkg/model"
)

// Preset names.
const (
	PresetLight  = "light"
	PresetDark   = "dark"
	PresetOcean  = "ocean"
	PresetForest = "forest"
	PresetSunset = "sunset"
	PresetMono   = "mono"
)

var presets = map[string]model.DesignPalette{
	PresetLight: model.DefaultPalette(),
	PresetDark: {
		PrimaryColor:     "#818cf8",
		BackgroundColor:  "#0f172a",
		TitleColor:       "#f8fafc",
		DescriptionColor: "#cbd5e1",
		FontFamily:       "Inter, sans-serif",
		BorderRadius:     "8px",
	},
	PresetOcean: {
		PrimaryColor:     "#0891b2",
		BackgroundColor:  "#f0f9ff",
		TitleColor:       "#0c4a6e",
		DescriptionColor: "#334155",
		FontFamily:       "Poppins, sans-serif",
		BorderRadius:     "12px",
	},
	PresetForest: {
		PrimaryColor:     "#15803d",
		BackgroundColor:  "#f7fee7",
		TitleColor:       "#14532d",
		DescriptionColor: "#3f6212",
		FontFamily:       "Merriweather, serif",
		BorderRadius:     "4px",
	},
	PresetSunset: {
		PrimaryColor:     "#ea580c",
		BackgroundColor:  "#fff7ed",
		TitleColor:       "#7c2d12",
		DescriptionColor: "#57534e",
		FontFamily:       "Playfair Display, serif",
		BorderRadius:     "16px",
	},
	PresetMono: {
		PrimaryColor:     "#111111",
		BackgroundColor:  "#ffffff",
		TitleColor:       "#111111",
		DescriptionColor: "#555555",
		FontFamily:       "JetBrains Mono, monospace",
		BorderRadius:     "0",
	},
}

// Preset returns the named palette.
func Preset(name string) (model.DesignPalette, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
