// Package export writes recorded runs to CSV or JSON for downstream
// analysis and plotting.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/armctl/internal/joint"
)

type RunData struct {
	Joints   int                `json:"joints"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Metrics  map[string]float64 `json:"metrics"`
	Times    []float64          `json:"times"`
	Position [][]float64        `json:"position"`
	Velocity [][]float64        `json:"velocity"`
	Torque   [][]float64        `json:"torque"`
}

func NewRunData(joints int, dt, duration float64, metrics map[string]float64, samples []joint.Sample) RunData {
	data := RunData{
		Joints:   joints,
		Dt:       dt,
		Duration: duration,
		Steps:    len(samples),
		Metrics:  metrics,
		Times:    make([]float64, len(samples)),
		Position: make([][]float64, len(samples)),
		Velocity: make([][]float64, len(samples)),
		Torque:   make([][]float64, len(samples)),
	}
	for i, s := range samples {
		data.Times[i] = s.T
		data.Position[i] = s.Position
		data.Velocity[i] = s.Velocity
		data.Torque[i] = s.Torque
	}
	return data
}

func JSON(w io.Writer, data RunData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func CSV(w io.Writer, samples []joint.Sample) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(samples) == 0 {
		return nil
	}

	n := len(samples[0].Position)
	header := []string{"time"}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("q%d", j))
	}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("dq%d", j))
	}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("tau%d", j))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		row := make([]string, 0, 1+3*n)
		row = append(row, strconv.FormatFloat(s.T, 'f', 6, 64))
		for _, v := range s.Position {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range s.Velocity {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range s.Torque {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
