package cpustat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSamplerNonBlocking(t *testing.T) {
	s := NewSampler()

	start := time.Now()
	pct := s.UtilizationPercent()
	assert.Less(t, time.Since(start), time.Second)
	assert.GreaterOrEqual(t, pct, 0.0)
}

func TestSamplerRepeatedReads(t *testing.T) {
	s := NewSampler()

	for i := 0; i < 3; i++ {
		pct := s.UtilizationPercent()
		assert.GreaterOrEqual(t, pct, 0.0)
	}
}
