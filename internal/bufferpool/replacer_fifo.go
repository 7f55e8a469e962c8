package bufferpool

// fifoReplacer scans circularly from one past the last victim. Pinning or
// touching a frame never changes its queue position.
type fifoReplacer struct {
	cursor int
}

func newFIFOReplacer(numFrames int) *fifoReplacer {
	// First scan starts at slot 0.
	return &fifoReplacer{cursor: numFrames - 1}
}

func (r *fifoReplacer) RecordAccess(int, uint64) {}
func (r *fifoReplacer) Reset(int)                {}

func (r *fifoReplacer) Victim(frames []Frame) (int, bool) {
	n := len(frames)
	if n == 0 {
		return -1, false
	}

	slot := r.cursor
	for range n {
		slot = (slot + 1) % n
		if frames[slot].pinCount == 0 {
			r.cursor = slot
			return slot, true
		}
	}
	r.cursor = slot
	return -1, false
}
