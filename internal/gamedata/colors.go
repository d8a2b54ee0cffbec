package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ThemeDef holds the hex colors a profile draws its level with.
type ThemeDef struct {
	Wall      string `json:"wall" yaml:"wall"`
	Path      string `json:"path" yaml:"path"`
	Room      string `json:"room" yaml:"room"`
	DoorStart string `json:"doorStart" yaml:"doorStart"`
	DoorEnd   string `json:"doorEnd" yaml:"doorEnd"`
	Player    string `json:"player" yaml:"player"`
}

// Theme is a ThemeDef resolved to terminal colors.
type Theme struct {
	Wall      tcell.Color
	Path      tcell.Color
	Room      tcell.Color
	DoorStart tcell.Color
	DoorEnd   tcell.Color
	Player    tcell.Color
}

// DefaultTheme is used when a profile has no usable theme.
var DefaultTheme = Theme{
	Wall:      tcell.ColorDarkGray,
	Path:      tcell.ColorGray,
	Room:      tcell.ColorTan,
	DoorStart: tcell.ColorGreen,
	DoorEnd:   tcell.ColorRed,
	Player:    tcell.ColorYellow,
}

// Colors parses every entry. Empty entries take the DefaultTheme color;
// malformed ones are an error.
func (d ThemeDef) Colors() (Theme, error) {
	t := DefaultTheme
	for _, f := range []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"wall", d.Wall, &t.Wall},
		{"path", d.Path, &t.Path},
		{"room", d.Room, &t.Room},
		{"doorStart", d.DoorStart, &t.DoorStart},
		{"doorEnd", d.DoorEnd, &t.DoorEnd},
		{"player", d.Player, &t.Player},
	} {
		if f.hex == "" {
			continue
		}
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return DefaultTheme, fmt.Errorf("theme %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return t, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}
