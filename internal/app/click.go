package app

import "time"

// Click sequence limits.
const (
	multiClickTime     = 400 * time.Millisecond
	multiClickDistance = 1
)

// clickTracker counts presses that land close together in space and time,
// for double and triple clicks.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance int

	lastX, lastY int
	lastTime     time.Time
	lastCount    int
}

func newClickTracker(maxTime time.Duration, maxDistance int) *clickTracker {
	return &clickTracker{
		maxTime:     maxTime,
		maxDistance: maxDistance,
	}
}

// record registers a press at cell (x, y) and returns the click count, 1 to
// 3. A fourth click starts over at 1.
func (t *clickTracker) record(x, y int, at time.Time) int {
	if t.inSequence(x, y, at) {
		t.lastCount++
		if t.lastCount > 3 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}
	t.lastX, t.lastY = x, y
	t.lastTime = at
	return t.lastCount
}

func (t *clickTracker) inSequence(x, y int, at time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}
	// Clock skew starts a new sequence.
	elapsed := at.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}
	return abs(x-t.lastX)+abs(y-t.lastY) <= t.maxDistance
}

func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
