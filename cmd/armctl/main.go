package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/armctl/internal/config"
	"github.com/san-kum/armctl/internal/export"
	"github.com/san-kum/armctl/internal/rig"
	"github.com/san-kum/armctl/internal/storage"
	"github.com/san-kum/armctl/internal/tui"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	joints     int
	kp         float64
	kd         float64
	hold       string
	initial    string
	waveJoint  int
	waveAmp    float64
	waveFreq   float64
	integrator string
	paced      bool
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "armctl",
		Short: "fixed-rate PD joint controller",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".armctl", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a control loop",
		RunE:  runLoop,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "tick period (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "run duration (s)")
	cmd.Flags().IntVar(&joints, "joints", config.DefaultJoints, "joint count")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain (all joints)")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain (all joints)")
	cmd.Flags().StringVar(&hold, "hold", "", "comma-separated hold targets (rad)")
	cmd.Flags().StringVar(&initial, "initial", "", "comma-separated reset position (rad)")
	cmd.Flags().IntVar(&waveJoint, "wave-joint", -1, "joint index to drive sinusoidally")
	cmd.Flags().Float64Var(&waveAmp, "wave-amp", 0.8, "sinusoid amplitude (rad)")
	cmd.Flags().Float64Var(&waveFreq, "wave-freq", 0.5, "sinusoid frequency (Hz)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "simulated backend integrator")
	cmd.Flags().BoolVar(&paced, "paced", false, "hold the loop to wall-clock rate")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func parseFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", p, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and file values.
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("joints") {
		cfg.Joints = joints
	}
	if cmd.Flags().Changed("kp") {
		cfg.Gains.P = nil
		cfg.Gains.Kp = kp
	}
	if cmd.Flags().Changed("kd") {
		cfg.Gains.D = nil
		cfg.Gains.Kd = kd
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Backend.Integrator = integrator
	}
	if cmd.Flags().Changed("paced") {
		cfg.Paced = paced
	}

	if cmd.Flags().Changed("initial") {
		vals, err := parseFloats(initial)
		if err != nil {
			return nil, err
		}
		cfg.Initial = vals
	}

	if cmd.Flags().Changed("hold") || cmd.Flags().Changed("wave-joint") {
		targets, err := parseFloats(hold)
		if err != nil {
			return nil, err
		}
		refs := make([]config.JointRef, cfg.Joints)
		for j := range refs {
			refs[j] = config.JointRef{Type: "hold"}
			if j < len(targets) {
				refs[j].Target = targets[j]
			}
		}
		if waveJoint >= 0 {
			if waveJoint >= cfg.Joints {
				return nil, fmt.Errorf("wave-joint %d out of range for %d joints", waveJoint, cfg.Joints)
			}
			refs[waveJoint] = config.JointRef{
				Type:      "sine",
				Center:    refs[waveJoint].Target,
				Amplitude: waveAmp,
				Frequency: waveFreq,
			}
		}
		cfg.Trajectory = refs
	}

	return cfg, nil
}

func runLoop(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	r, err := rig.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d-joint loop: dt=%.4fs duration=%.2fs (%d ticks)\n",
		cfg.Joints, cfg.Dt, cfg.Duration, r.Steps())
	start := time.Now()

	rec, vals, runErr := r.Run(context.Background())
	elapsed := time.Since(start)

	runID, saveErr := st.Save(storage.RunMetadata{
		Joints:    cfg.Joints,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Completed: runErr == nil,
		Metrics:   vals,
	}, rec.Samples())
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", rec.Len())
	fmt.Println("\nmetrics:")
	for name, val := range vals {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if runErr != nil {
		return fmt.Errorf("run aborted (partial data saved as %s): %w", runID, runErr)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	r, err := rig.Build(cfg)
	if err != nil {
		return err
	}

	obs := tui.NewStreamObserver()
	r.AddObserver(obs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		_, _, err := r.Run(ctx)
		runErr <- err
		obs.Close()
	}()

	if err := tui.Run(r.Trajectory(), obs); err != nil {
		return err
	}
	cancel()

	if err := <-runErr; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tJOINTS\tDURATION\tDT\tCOMPLETED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.4fs\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Joints,
			run.Duration,
			run.Dt,
			run.Completed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	for j := 0; j < meta.Joints; j++ {
		pos := make([]float64, len(samples))
		tau := make([]float64, len(samples))
		for i, s := range samples {
			pos[i] = s.Position[j]
			tau[i] = s.Torque[j]
		}

		fmt.Println(asciigraph.Plot(pos,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("joint %d position (rad)", j)),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(tau,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("joint %d torque (Nm)", j)),
		))
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return export.CSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	data := export.NewRunData(meta.Joints, meta.Dt, meta.Duration, meta.Metrics, samples)
	return export.JSON(os.Stdout, data)
}
