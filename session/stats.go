package session

import "time"

// Stats summarizes one transfer. Formatting is the caller's job.
type Stats struct {
	Bytes   int64
	Elapsed time.Duration
}

func (st Stats) ThroughputMbps() float64 {
	if st.Elapsed <= 0 {
		return 0
	}
	return float64(st.Bytes) * 8 / 1e6 / st.Elapsed.Seconds()
}
