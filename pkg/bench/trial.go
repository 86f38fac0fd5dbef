package bench

// Trial holds the samples collected from one benchmark run. Times and GCTimes
// are per-evaluation nanoseconds in chronological order and always have the
// same length; entry i of both describes the same sample. Memory and Allocs
// are per-evaluation scalars captured once per trial, from the first sample's
// batch counters: workloads whose allocation behavior varies between batches
// will see only the first batch reflected here.
//
// A Trial is immutable once returned by Run.
type Trial struct {
	Params  Parameters `json:"params"`
	Times   []int64    `json:"times"`
	GCTimes []int64    `json:"gctimes"`
	Memory  int64      `json:"memory"`
	Allocs  int64      `json:"allocs"`
}

// Len returns the number of collected samples.
func (t *Trial) Len() int {
	return len(t.Times)
}
