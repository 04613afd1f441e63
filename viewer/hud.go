package viewer

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Hares      int
	Wolves     int
	Deer       int
	DeerGroups int
	Tick       int32
	Speed      int
	FPS        int32
	Paused     bool
	PlayerDown bool
	ScreenW    int32
	ScreenH    int32
}

// HUD renders the main heads-up display.
type HUD struct {
	theme Theme
}

// NewHUD creates a new HUD renderer.
func NewHUD(theme Theme) *HUD {
	return &HUD{theme: theme}
}

// Draw renders the HUD and its widgets. It returns the speed and pause
// state after any widget interaction this frame.
func (h *HUD) Draw(data HUDData) (speed int, paused bool) {
	// Title
	rl.DrawText("Meadow", 10, 10, 20, rl.White)

	// Population counts
	rl.DrawText(
		fmt.Sprintf("Hares: %d | Wolves: %d | Deer: %d in %d herds", data.Hares, data.Wolves, data.Deer, data.DeerGroups),
		10, 35, 16, h.theme.LabelColor,
	)

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, h.theme.LabelColor,
	)

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, h.theme.AlertColor)

	if data.PlayerDown {
		msg := "The wolves got you"
		w := rl.MeasureText(msg, 24)
		rl.DrawText(msg, data.ScreenW/2-w/2, 40, 24, rl.Red)
	}

	// Widgets
	sliderBounds := rl.NewRectangle(float32(data.ScreenW)-230, 14, 140, 20)
	value := gui.Slider(sliderBounds, "Speed", fmt.Sprintf("%dx", data.Speed), float32(data.Speed), 1, 10)
	speed = int(value + 0.5)

	toggleBounds := rl.NewRectangle(float32(data.ScreenW)-230, 42, 70, 22)
	paused = gui.Toggle(toggleBounds, "Pause", data.Paused)

	return speed, paused
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the step timing panel.
type PerfPanel struct {
	theme Theme
	x, y  int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(theme Theme, x, y int32) *PerfPanel {
	return &PerfPanel{theme: theme, x: x, y: y}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	width := int32(250)
	height := int32(44) + int32(len(telemetry.PhaseOrder))*14 + 8
	rl.DrawRectangle(p.x-6, p.y-6, width, height, p.theme.PanelBg)
	rl.DrawRectangleLines(p.x-6, p.y-6, width, height, p.theme.PanelBorder)

	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Total: %s (%.0f tps)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, p.theme.AlertColor,
	)
	y += 16

	for _, phase := range telemetry.PhaseOrder {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := p.theme.LabelColor
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
