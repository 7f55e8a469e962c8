package bufferpool

// lrukReplacer keeps the last k access stamps per slot. Slots with fewer than k
// stamps have infinite backward distance and are evicted first, oldest
// last_access first. Otherwise the smallest k-th most recent stamp wins.
type lrukReplacer struct {
	k       int
	history [][]uint64 // newest last, at most k entries
}

func newLRUKReplacer(numFrames, k int) *lrukReplacer {
	if k < 1 {
		k = DefaultLRUK
	}
	h := make([][]uint64, numFrames)
	for i := range h {
		h[i] = make([]uint64, 0, k)
	}
	return &lrukReplacer{k: k, history: h}
}

func (r *lrukReplacer) RecordAccess(slot int, ts uint64) {
	if slot < 0 || slot >= len(r.history) {
		return
	}
	h := r.history[slot]
	if len(h) == r.k {
		copy(h, h[1:])
		h = h[:r.k-1]
	}
	r.history[slot] = append(h, ts)
}

func (r *lrukReplacer) Reset(slot int) {
	if slot >= 0 && slot < len(r.history) {
		r.history[slot] = r.history[slot][:0]
	}
}

// kth returns the k-th most recent stamp, or false if fewer than k were recorded.
func (r *lrukReplacer) kth(slot int) (uint64, bool) {
	h := r.history[slot]
	if len(h) < r.k {
		return 0, false
	}
	return h[len(h)-r.k], true
}

func (r *lrukReplacer) Victim(frames []Frame) (int, bool) {
	victim := -1
	victimFull := false
	var victimKey uint64

	for i := range frames {
		if frames[i].pinCount != 0 || i >= len(r.history) {
			continue
		}
		key, full := r.kth(i)
		if !full {
			key = frames[i].lastAccess
		}
		switch {
		case victim < 0:
		case victimFull && !full:
		case victimFull == full && key < victimKey:
		default:
			continue
		}
		victim, victimFull, victimKey = i, full, key
	}
	return victim, victim >= 0
}
