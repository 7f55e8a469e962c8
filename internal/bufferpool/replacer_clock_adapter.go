package bufferpool

import "github.com/tuannm99/novapool/pkg/clockx"

// clockAdapter exposes clockx as a Replacer. Pin state is read from the frames on
// each sweep.
type clockAdapter struct {
	c *clockx.Clock
}

func newClockAdapter(numFrames int) *clockAdapter {
	return &clockAdapter{c: clockx.New(numFrames)}
}

func (a *clockAdapter) RecordAccess(slot int, _ uint64) {
	a.c.Touch(slot)
}

func (a *clockAdapter) Reset(slot int) {
	a.c.Clear(slot)
}

func (a *clockAdapter) Victim(frames []Frame) (int, bool) {
	return a.c.Evict(func(slot int) bool {
		return slot < len(frames) && frames[slot].pinCount == 0
	})
}
