package bufferpool

// lruReplacer picks the unpinned frame with the smallest last_access. Ties go to
// the lowest slot.
type lruReplacer struct{}

func (lruReplacer) RecordAccess(int, uint64) {}
func (lruReplacer) Reset(int)                {}

func (lruReplacer) Victim(frames []Frame) (int, bool) {
	victim := -1
	for i := range frames {
		f := &frames[i]
		if f.pinCount != 0 {
			continue
		}
		if victim < 0 || f.lastAccess < frames[victim].lastAccess {
			victim = i
		}
	}
	return victim, victim >= 0
}
