// Package profiling records named CPU durations for the current frame.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Frame accumulates per-frame totals. The render loop owns one and resets it
// at the start of every frame.
type Frame struct {
	totals map[string]time.Duration
	now    func() time.Time
}

// NewFrame returns an empty frame profiler
func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration), now: time.Now}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer frame.Track("render.Draw")()
func (f *Frame) Track(name string) func() {
	start := f.now()
	return func() {
		f.totals[name] += f.now().Sub(start)
	}
}

// Reset clears the totals. Call at the start of each frame.
func (f *Frame) Reset() {
	clear(f.totals)
}

// Total returns the sum of all tracked durations.
func (f *Frame) Total() time.Duration {
	var sum time.Duration
	for _, d := range f.totals {
		sum += d
	}
	return sum
}

// TopN formats the n slowest entries, e.g. "draw:4.2ms, uniforms:0.3ms".
func (f *Frame) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(f.totals))
	for k, v := range f.totals {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", p.name, float64(p.dur.Microseconds())/1000.0))
	}
	return strings.Join(parts, ", ")
}
