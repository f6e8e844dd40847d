package sand

import (
	"fmt"
	"image/color"
	"strconv"

	icore "pixeldust/internal/core"
)

// Palette exposes the display colors of the loaded scene.
func (w *World) Palette() []color.RGBA { return w.scene.Palette() }

// Parameters reports the scene, physics settings, tilt and engine counters.
func (w *World) Parameters() icore.ParameterSnapshot {
	st := w.sim.Stats()
	ax, ay, az := w.Tilt()
	tiltMode := w.scene.Tilt.Kind
	if w.manual != nil {
		tiltMode = "manual"
	}
	status := "ok"
	if w.err != nil {
		status = w.err.Error()
	}
	return icore.ParameterSnapshot{Groups: []icore.ParameterGroup{
		{
			Name: "Scene",
			Params: []icore.Parameter{
				textParam("scene", "Scene", w.scene.Name),
				intParam("planes", "Planes", w.sim.NumPlanes()),
				intParam("grains", "Grains", w.sim.NumGrains()),
				textParam("status", "Status", status),
			},
		},
		{
			Name: "Physics",
			Params: []icore.Parameter{
				intParam("elasticity", "Elasticity", w.sim.Elasticity()),
				intParam("scale", "Accel scale", w.sim.Scale()),
				boolParam("sort", "Sort grains", w.sim.Sorted()),
			},
		},
		{
			Name: "Tilt",
			Params: []icore.Parameter{
				textParam("tilt", "Source", tiltMode),
				textParam("accel", "Accel", fmt.Sprintf("%d,%d,%d", ax, ay, az)),
			},
		},
		{
			Name: "Stats",
			Params: []icore.Parameter{
				intParam("tick", "Tick", w.tick),
				uintParam("moves", "Moves", st.Moves),
				uintParam("crossings", "Crossings", st.Crossings),
				uintParam("blocks", "Blocks", st.Blocks),
				uintParam("skids", "Skids", st.Skids),
				uintParam("stops", "Stops", st.Stops),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable settings.
func (w *World) ParameterControls() []icore.ParameterControl {
	return []icore.ParameterControl{
		{Key: "elasticity", Label: "Elasticity", Type: icore.ParamTypeInt, Step: 8, Min: 0, Max: 256, HasMin: true, HasMax: true},
		{Key: "scale", Label: "Accel scale", Type: icore.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "sort", Label: "Sort grains", Type: icore.ParamTypeBool, Step: 1, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies a HUD adjustment. Unknown keys are rejected.
func (w *World) SetIntParameter(key string, value int) bool {
	for _, c := range w.ParameterControls() {
		if c.Key == key {
			value = c.Clamp(value)
			break
		}
	}
	switch key {
	case "elasticity":
		w.sim.SetElasticity(value)
	case "scale":
		w.sim.SetScale(value)
	case "sort":
		w.sim.SetSort(value != 0)
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) icore.Parameter {
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func uintParam(key, label string, value uint64) icore.Parameter {
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeText,
		Value: strconv.FormatUint(value, 10),
	}
}

func boolParam(key, label string, value bool) icore.Parameter {
	v := 0
	if value {
		v = 1
	}
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeBool,
		Value: strconv.Itoa(v),
	}
}

func textParam(key, label, value string) icore.Parameter {
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeText,
		Value: value,
	}
}
