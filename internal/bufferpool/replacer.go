package bufferpool

import "fmt"

// DefaultLRUK is the history depth used by LRU-K unless WithLRUK overrides it.
const DefaultLRUK = 2

// Replacer picks eviction victims. The pool stamps every access itself and
// forwards it through RecordAccess; policies that only need last_access read it
// from the frame slice passed to Victim.
type Replacer interface {
	// RecordAccess is called each time slot receives a new last-access stamp.
	RecordAccess(slot int, ts uint64)
	// Reset forgets per-page history after a new page is loaded into slot
	// (or the load was rolled back).
	Reset(slot int)
	// Victim returns an unpinned slot, or false when every frame is pinned.
	Victim(frames []Frame) (slot int, ok bool)
}

func newReplacer(s Strategy, numFrames, k int) (Replacer, error) {
	switch s {
	case StrategyFIFO:
		return newFIFOReplacer(numFrames), nil
	case StrategyLRU:
		return lruReplacer{}, nil
	case StrategyClock:
		return newClockAdapter(numFrames), nil
	case StrategyLFU:
		return newLFUReplacer(numFrames), nil
	case StrategyLRUK:
		return newLRUKReplacer(numFrames, k), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
}
