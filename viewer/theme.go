package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/components"
)

// Theme holds UI styling constants.
type Theme struct {
	Background  rl.Color
	FieldFill   rl.Color
	FieldBorder rl.Color

	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	AlertColor  rl.Color

	HareColor   rl.Color
	WolfColor   rl.Color
	DeerColor   rl.Color
	PlayerColor rl.Color
	BulletColor rl.Color
	OutlineOn   bool

	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  rl.Color{R: 18, G: 24, B: 18, A: 255},
		FieldFill:   rl.Color{R: 34, G: 48, B: 30, A: 255},
		FieldBorder: rl.Color{R: 90, G: 110, B: 80, A: 255},

		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		AlertColor:  rl.Yellow,

		HareColor:   rl.RayWhite,
		WolfColor:   rl.Color{R: 90, G: 90, B: 100, A: 255},
		DeerColor:   rl.Color{R: 160, G: 110, B: 60, A: 255},
		PlayerColor: rl.SkyBlue,
		BulletColor: rl.Gold,
		OutlineOn:   true,

		Padding:        10,
		LineHeight:     16,
		FontSize:       12,
		HeaderFontSize: 16,
	}
}

// SpeciesColor returns the render color for a species.
func (t Theme) SpeciesColor(sp components.Species) rl.Color {
	switch sp {
	case components.SpeciesHare:
		return t.HareColor
	case components.SpeciesWolf:
		return t.WolfColor
	case components.SpeciesDeer:
		return t.DeerColor
	case components.SpeciesPlayer:
		return t.PlayerColor
	default:
		return t.BulletColor
	}
}
