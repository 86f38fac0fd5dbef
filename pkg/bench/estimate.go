package bench

import "sort"

// Estimate is a single-point reduction of a Trial. Time and GCTime are
// per-evaluation nanoseconds; Memory, Allocs and Tolerance are copied through
// from the source Trial unchanged.
type Estimate struct {
	Time      float64 `json:"time"`
	GCTime    float64 `json:"gctime"`
	Memory    int64   `json:"memory"`
	Allocs    int64   `json:"allocs"`
	Tolerance float64 `json:"tolerance"`
}

// Minimum returns the estimate at the smallest recorded time. GCTime is taken
// from the same sample, never independently minimized, so the pair describes
// a batch that actually happened. Ties resolve to the earliest sample.
// The trial must hold at least one sample.
func Minimum(t *Trial) Estimate {
	best := 0
	for i, v := range t.Times {
		if v < t.Times[best] {
			best = i
		}
	}
	return pointEstimate(t, float64(t.Times[best]), float64(t.GCTimes[best]))
}

// Maximum returns the estimate at the largest recorded time, with GCTime
// taken from the same sample. Ties resolve to the earliest sample.
func Maximum(t *Trial) Estimate {
	best := 0
	for i, v := range t.Times {
		if v > t.Times[best] {
			best = i
		}
	}
	return pointEstimate(t, float64(t.Times[best]), float64(t.GCTimes[best]))
}

// Median returns the middle order statistic of the recorded times. For an
// even sample count the two central samples are averaged, and their GCTimes
// are averaged from those same two samples to preserve pairing.
func Median(t *Trial) Estimate {
	n := t.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return t.Times[idx[i]] < t.Times[idx[j]]
	})

	if n%2 == 1 {
		mid := idx[n/2]
		return pointEstimate(t, float64(t.Times[mid]), float64(t.GCTimes[mid]))
	}
	a, b := idx[n/2-1], idx[n/2]
	return pointEstimate(t,
		float64(t.Times[a]+t.Times[b])/2,
		float64(t.GCTimes[a]+t.GCTimes[b])/2)
}

// Mean returns the arithmetic mean of the recorded times and, independently,
// of the recorded GC times.
func Mean(t *Trial) Estimate {
	var sumTime, sumGC int64
	for i := range t.Times {
		sumTime += t.Times[i]
		sumGC += t.GCTimes[i]
	}
	n := float64(t.Len())
	return pointEstimate(t, float64(sumTime)/n, float64(sumGC)/n)
}

func pointEstimate(t *Trial, time, gctime float64) Estimate {
	return Estimate{
		Time:      time,
		GCTime:    gctime,
		Memory:    t.Memory,
		Allocs:    t.Allocs,
		Tolerance: t.Params.Tolerance,
	}
}
