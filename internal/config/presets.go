package config

// Presets are named ready-to-run setups.
var Presets = map[string]*Config{
	"hold": {
		Joints: 3, Dt: 0.001, Duration: 5.0,
		Gains: GainsConfig{Kp: 1.5, Kd: 0.01},
		Trajectory: []JointRef{
			{Type: "hold", Target: 0},
			{Type: "hold", Target: 0},
			{Type: "hold", Target: 0.785398},
		},
		Backend: BackendConfig{Integrator: "rk4", Mass: 1.0, Length: 1.0, Damping: 0.1, Gravity: 9.81},
	},
	"wave": {
		Joints: 3, Dt: 0.001, Duration: 10.0,
		Gains: GainsConfig{Kp: 50.0, Kd: 5.0},
		Trajectory: []JointRef{
			{Type: "hold", Target: 0},
			{Type: "hold", Target: 0},
			{Type: "sine", Amplitude: 0.8, Frequency: 0.5},
		},
		Backend: BackendConfig{Integrator: "rk4", Mass: 1.0, Length: 1.0, Damping: 0.1, Gravity: 0},
	},
	"mixed": {
		Joints: 3, Dt: 0.001, Duration: 20.0,
		Gains: GainsConfig{
			P: []float64{40.0, 40.0, 60.0},
			D: []float64{4.0, 4.0, 8.0},
		},
		Initial: []float64{0.2, -0.1, 0},
		Trajectory: []JointRef{
			{Type: "hold", Target: 0.2},
			{Type: "sine", Center: -0.1, Amplitude: 0.3, Frequency: 0.25},
			{Type: "sine", Amplitude: 0.8, Frequency: 0.5, Phase: 1.570796},
		},
		Backend: BackendConfig{Integrator: "rk4", Mass: 1.0, Length: 1.0, Damping: 0.2, Gravity: 9.81},
	},
	"realtime": {
		Joints: 3, Dt: 0.02, Duration: 10.0, Paced: true,
		Gains: GainsConfig{Kp: 1.5, Kd: 0.01},
		Trajectory: []JointRef{
			{Type: "hold", Target: 0},
			{Type: "hold", Target: 0},
			{Type: "hold", Target: 0.785398},
		},
		Backend: BackendConfig{Integrator: "euler", Mass: 1.0, Length: 1.0, Damping: 0.1, Gravity: 9.81},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	// Copy the slices so callers can mutate the result without
	// touching the preset table.
	c := *cfg
	c.Gains.P = append([]float64(nil), cfg.Gains.P...)
	c.Gains.D = append([]float64(nil), cfg.Gains.D...)
	c.Initial = append([]float64(nil), cfg.Initial...)
	c.Trajectory = append([]JointRef(nil), cfg.Trajectory...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
