package app

import (
	"strconv"

	"infigrid/internal/anim"
	"infigrid/internal/core"
	"infigrid/internal/grid"
)

// Circle parameter bounds exposed on the HUD.
const (
	maxRadius = 64
	maxBorder = 32
)

// Tunables exposes the circle kernel parameters of an engine as HUD
// controls. A running flood restarts on the new circle and an idle one is
// cleared.
type Tunables struct {
	engine *grid.Engine
	flood  *anim.Driver
}

// NewTunables wraps engine. flood may be nil.
func NewTunables(engine *grid.Engine, flood *anim.Driver) *Tunables {
	return &Tunables{engine: engine, flood: flood}
}

// Parameters returns the current values.
func (t *Tunables) Parameters() core.ParameterSnapshot {
	b := t.engine.Builtins()
	st := t.engine.Stats()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Circle",
			Params: []core.Parameter{
				{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Value: strconv.Itoa(b.Circle.Radius), Description: "circle radius in cells"},
				{Key: "border", Label: "Ring", Type: core.ParamTypeInt, Value: strconv.Itoa(b.Circle.Border), Description: "ring width in cells"},
			},
		},
		{
			Name: "Grid",
			Params: []core.Parameter{
				{Key: "kernel", Label: "Kernel", Value: st.Kernel.String()},
				{Key: "active", Label: "Active", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Active)},
				{Key: "allocated", Label: "Allocated", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Allocated)},
			},
		},
	}}
}

// ParameterControls lists the adjustable parameters.
func (t *Tunables) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxRadius, HasMin: true, HasMax: true},
		{Key: "border", Label: "Ring", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: maxBorder, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates a circle parameter. It reports false for unknown
// keys and out-of-range values.
func (t *Tunables) SetIntParameter(key string, value int) bool {
	b := t.engine.Builtins()
	switch key {
	case "radius":
		if value < 1 || value > maxRadius {
			return false
		}
		b.Circle.Radius = value
	case "border":
		if value < 0 || value > maxBorder {
			return false
		}
		b.Circle.Border = value
	default:
		return false
	}
	t.engine.SetBuiltins(b)
	if t.flood != nil {
		t.flood.Retarget()
	}
	return true
}
