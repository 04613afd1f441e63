package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/sim"
)

const controlsLegend = "WASD move | Mouse aim | LMB shoot | Space pause | , . speed | P perf"

// Viewer drives a simulation interactively: it renders the field and
// translates input into player actions.
type Viewer struct {
	sim       *sim.Simulation
	cfg       *config.Config
	cam       *Camera
	theme     Theme
	hud       *HUD
	perfPanel *PerfPanel
	showPerf  bool

	agents []sim.AgentView
}

// New creates a viewer and puts the player on the field.
func New(s *sim.Simulation, cfg *config.Config) *Viewer {
	theme := DefaultTheme()
	v := &Viewer{
		sim:       s,
		cfg:       cfg,
		cam:       NewCamera(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		theme:     theme,
		hud:       NewHUD(theme),
		perfPanel: NewPerfPanel(theme, 10, 110),
	}
	s.SpawnPlayer()
	return v
}

// Update processes input and advances the simulation.
func (v *Viewer) Update() {
	v.handleInput()
	v.sim.Update()
	v.sim.RecordFrame()
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(v.theme.Background)

	v.drawField()
	v.drawAgents()
	v.drawHUD()

	rl.EndDrawing()
}

func (v *Viewer) drawHUD() {
	data := HUDData{
		Hares:      v.sim.Hares(),
		Wolves:     v.sim.Wolves(),
		Deer:       v.sim.Deer(),
		DeerGroups: v.sim.DeerGroups(),
		Tick:       v.sim.Tick(),
		Speed:      v.sim.Speed(),
		FPS:        rl.GetFPS(),
		Paused:     v.sim.Paused(),
		PlayerDown: !v.sim.PlayerAlive(),
		ScreenW:    int32(v.cfg.Screen.Width),
		ScreenH:    int32(v.cfg.Screen.Height),
	}

	speed, paused := v.hud.Draw(data)
	v.sim.SetSpeed(speed)
	v.sim.SetPaused(paused)

	v.hud.DrawControls(int32(v.cfg.Screen.Height), controlsLegend)

	if v.showPerf {
		v.perfPanel.Draw(v.sim.PerfStats())
	}
}
