package modalprompt

import (
	"fmt"
	"strings"
)

// Theme defines the colors of a rendered prompt dialog.
type Theme struct {
	Name          string `json:"name"`
	Title         Color  `json:"title"`
	Input         Color  `json:"input"`
	Placeholder   Color  `json:"placeholder"`
	Button        Color  `json:"button"`
	ButtonFocused Color  `json:"button_focused"`
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault is the default theme with a green title and white text
var ThemeDefault = &Theme{
	Name:          "default",
	Title:         Color{R: 0, G: 255, B: 0, Bold: true},
	Input:         Color{R: 255, G: 255, B: 255, Bold: true},
	Placeholder:   Color{R: 128, G: 128, B: 128},
	Button:        Color{R: 200, G: 200, B: 200},
	ButtonFocused: Color{R: 0, G: 255, B: 255, Bold: true},
}

// ThemeDark is a dark theme with a light blue title and off-white text
var ThemeDark = &Theme{
	Name:          "dark",
	Title:         Color{R: 102, G: 217, B: 239, Bold: true},
	Input:         Color{R: 248, G: 248, B: 242},
	Placeholder:   Color{R: 98, G: 114, B: 164},
	Button:        Color{R: 189, G: 147, B: 249},
	ButtonFocused: Color{R: 80, G: 250, B: 123, Bold: true},
}

// ThemeLight is a light theme with a blue title and dark gray text
var ThemeLight = &Theme{
	Name:          "light",
	Title:         Color{R: 0, G: 119, B: 187, Bold: true},
	Input:         Color{R: 36, G: 41, B: 46},
	Placeholder:   Color{R: 149, G: 157, B: 165},
	Button:        Color{R: 88, G: 96, B: 105},
	ButtonFocused: Color{R: 40, G: 167, B: 69, Bold: true},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &Theme{
	Name:          "accessible",
	Title:         Color{R: 0, G: 114, B: 178, Bold: true},
	Input:         Color{R: 255, G: 255, B: 255},
	Placeholder:   Color{R: 204, G: 204, B: 204},
	Button:        Color{R: 255, G: 255, B: 255},
	ButtonFocused: Color{R: 230, G: 159, B: 0, Bold: true},
}

var themes = []*Theme{ThemeDefault, ThemeDark, ThemeLight, ThemeAccessible}

// ThemeByName returns the built-in theme with the given name, ignoring case.
func ThemeByName(name string) (*Theme, bool) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return nil, false
}

// ThemeNames lists the names of the built-in themes.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Hex returns the color in #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
