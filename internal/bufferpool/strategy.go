package bufferpool

import (
	"fmt"
	"strings"
)

// Strategy selects the replacement policy at Init time.
type Strategy int

const (
	StrategyFIFO Strategy = iota
	StrategyLRU
	StrategyClock
	StrategyLFU
	StrategyLRUK
)

func (s Strategy) String() string {
	switch s {
	case StrategyFIFO:
		return "FIFO"
	case StrategyLRU:
		return "LRU"
	case StrategyClock:
		return "CLOCK"
	case StrategyLFU:
		return "LFU"
	case StrategyLRUK:
		return "LRU-K"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) Valid() bool {
	return s >= StrategyFIFO && s <= StrategyLRUK
}

// ParseStrategy accepts the names printed by String, case-insensitively,
// plus "lru_k"/"lruk" for LRU-K.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo":
		return StrategyFIFO, nil
	case "lru":
		return StrategyLRU, nil
	case "clock":
		return StrategyClock, nil
	case "lfu":
		return StrategyLFU, nil
	case "lru-k", "lru_k", "lruk":
		return StrategyLRUK, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}
