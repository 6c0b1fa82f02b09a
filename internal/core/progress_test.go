package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateMeter(t *testing.T) {
	start := time.Unix(0, 0)
	r := newRateMeter(2, start)

	assert.InDelta(t, 100.0, r.observe(100, start.Add(time.Second)), 0.001)
	// (100 + 300) / 2
	assert.InDelta(t, 200.0, r.observe(400, start.Add(2*time.Second)), 0.001)
	// window of two: (300 + 0) / 2
	assert.InDelta(t, 150.0, r.observe(400, start.Add(3*time.Second)), 0.001)
	// no time passed, rate unchanged
	assert.InDelta(t, 150.0, r.observe(500, start.Add(3*time.Second)), 0.001)
}
