package loop

import "github.com/san-kum/armctl/internal/joint"

// Recorder is the append-only time series for one run. Single writer
// (the loop); read after the run ends.
type Recorder struct {
	samples []joint.Sample
}

func NewRecorder(capacity int) *Recorder {
	if capacity < 0 {
		capacity = 0
	}
	return &Recorder{samples: make([]joint.Sample, 0, capacity)}
}

func (r *Recorder) Append(s joint.Sample) {
	r.samples = append(r.samples, s)
}

func (r *Recorder) Len() int {
	return len(r.samples)
}

// Samples returns the recorded sequence ordered by tick index.
func (r *Recorder) Samples() []joint.Sample {
	return r.samples
}
