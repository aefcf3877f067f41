package cpustat

import (
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Sampler reports host CPU utilization without blocking. Each reading
// covers the interval since the previous one, so readings are meaningful
// from the second call onward; NewSampler primes a baseline so callers
// never see the cold-start interval.
type Sampler struct {
	mu sync.Mutex
}

// NewSampler constructs a sampler and takes the baseline reading.
func NewSampler() *Sampler {
	s := &Sampler{}
	_, _ = cpu.Percent(0, false)
	return s
}

// UtilizationPercent returns the aggregate busy percentage across all
// logical CPUs since the previous call. A platform read error degrades to
// 0 rather than failing status reporting.
func (s *Sampler) UtilizationPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	pcts, err := cpu.Percent(0, false)
	if err != nil || len(pcts) == 0 {
		return 0
	}
	return pcts[0]
}
