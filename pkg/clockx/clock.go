package clockx

// Clock implements CLOCK (second-chance) victim selection for a fixed number of slots.
// It only tracks reference bits and the hand; whether a slot may be evicted is decided
// by the caller on every sweep, so pinned state never has to be mirrored here.
type Clock struct {
	ref  []bool
	hand int
}

func New(capacity int) *Clock {
	if capacity <= 0 {
		capacity = 1
	}
	return &Clock{
		ref:  make([]bool, capacity),
		hand: 0,
	}
}

func (c *Clock) Capacity() int { return len(c.ref) }

// Hand is the next slot the sweep will inspect.
func (c *Clock) Hand() int { return c.hand }

// Touch marks slot as recently accessed.
func (c *Clock) Touch(id int) {
	if id < 0 || id >= len(c.ref) {
		return
	}
	c.ref[id] = true
}

// Referenced reports the reference bit of slot.
func (c *Clock) Referenced(id int) bool {
	if id < 0 || id >= len(c.ref) {
		return false
	}
	return c.ref[id]
}

// Clear drops the reference bit of slot (e.g., when a new page is loaded into it).
func (c *Clock) Clear(id int) {
	if id < 0 || id >= len(c.ref) {
		return
	}
	c.ref[id] = false
}

// Evict sweeps from the hand and returns the first evictable slot whose reference
// bit is clear. Evictable slots with the bit set get a second chance (bit cleared).
// The hand stops one past the victim.
func (c *Clock) Evict(evictable func(id int) bool) (id int, ok bool) {
	n := len(c.ref)

	// Up to 2 sweeps: the first may only clear bits.
	for range 2 * n {
		idx := c.hand
		c.hand = (c.hand + 1) % n

		if !evictable(idx) {
			continue
		}
		if !c.ref[idx] {
			return idx, true
		}
		// Second chance.
		c.ref[idx] = false
	}

	return -1, false
}

// Reset clears every bit and rewinds the hand.
func (c *Clock) Reset() {
	for i := range c.ref {
		c.ref[i] = false
	}
	c.hand = 0
}
