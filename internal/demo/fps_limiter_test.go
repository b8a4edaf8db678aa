package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSLimiterDisabled(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFPSLimiterPaces(t *testing.T) {
	f := NewFPSLimiter(100)
	start := time.Now()
	for i := 0; i < 5; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}
