package bufferpool

// lfuReplacer counts accesses since the page was loaded. Free frames count as
// zero. Ties go to the older last_access, then the lowest slot.
type lfuReplacer struct {
	counts []uint64
}

func newLFUReplacer(numFrames int) *lfuReplacer {
	return &lfuReplacer{counts: make([]uint64, numFrames)}
}

func (r *lfuReplacer) RecordAccess(slot int, _ uint64) {
	if slot >= 0 && slot < len(r.counts) {
		r.counts[slot]++
	}
}

func (r *lfuReplacer) Reset(slot int) {
	if slot >= 0 && slot < len(r.counts) {
		r.counts[slot] = 0
	}
}

func (r *lfuReplacer) count(frames []Frame, slot int) uint64 {
	if !frames[slot].occupied || slot >= len(r.counts) {
		return 0
	}
	return r.counts[slot]
}

func (r *lfuReplacer) Victim(frames []Frame) (int, bool) {
	victim := -1
	var best uint64
	for i := range frames {
		if frames[i].pinCount != 0 {
			continue
		}
		c := r.count(frames, i)
		switch {
		case victim < 0:
		case c < best:
		case c == best && frames[i].lastAccess < frames[victim].lastAccess:
		default:
			continue
		}
		victim, best = i, c
	}
	return victim, victim >= 0
}
